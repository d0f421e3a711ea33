package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the full schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db
}
