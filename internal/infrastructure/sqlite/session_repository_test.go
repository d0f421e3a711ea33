package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := domain.NewUser("alice", "hash", "London")
	require.NoError(t, users.Create(ctx, user))

	session := domain.NewSession(user.ID, time.Hour)
	require.NoError(t, sessions.Create(ctx, session))

	found, err := sessions.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.False(t, found.IsExpired())

	require.NoError(t, sessions.Delete(ctx, session.ID))

	_, err = sessions.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, sessions.Delete(ctx, session.ID), domain.ErrSessionNotFound)
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := domain.NewUser("alice", "hash", "London")
	require.NoError(t, users.Create(ctx, user))

	expired := domain.NewSession(user.ID, -time.Minute)
	live := domain.NewSession(user.ID, time.Hour)
	require.NoError(t, sessions.Create(ctx, expired))
	require.NoError(t, sessions.Create(ctx, live))

	require.NoError(t, sessions.DeleteExpired(ctx))

	_, err := sessions.FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = sessions.FindByID(ctx, live.ID)
	assert.NoError(t, err)
}

func TestSessionRequiresExistingUser(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionRepository(newTestDB(t))

	err := sessions.Create(ctx, domain.NewSession(999, time.Hour))
	assert.Error(t, err)
}
