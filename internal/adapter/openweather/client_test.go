package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const londonCurrent = `{"name":"London","main":{"temp":12.5,"humidity":81},"weather":[{"main":"Clouds","description":"overcast clouds"}],"cod":200}`

func TestClientURL(t *testing.T) {
	c := NewClient("http://api.openweathermap.org/data/2.5/", "key123", "metric", time.Second)

	current, err := c.URL("London", domain.ForecastCurrent)
	require.NoError(t, err)
	assert.Equal(t, "http://api.openweathermap.org/data/2.5/weather?appid=key123&q=London&units=metric", current)

	week, err := c.URL("San Francisco", domain.ForecastWeek)
	require.NoError(t, err)
	parsed, err := url.Parse(week)
	require.NoError(t, err)
	assert.Equal(t, "/data/2.5/forecast", parsed.Path)
	assert.Equal(t, "San Francisco", parsed.Query().Get("q"))

	_, err = c.URL("London", domain.ForecastKind("hourly"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestClientFetchReturnsBodyUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "key123", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(londonCurrent))
	}))
	defer server.Close()

	c := NewClient(server.URL, "key123", "metric", time.Second)
	payload, err := c.Fetch(context.Background(), "London", domain.ForecastCurrent)
	require.NoError(t, err)

	expected := domain.WeatherPayload{
		"name": "London",
		"main": map[string]any{"temp": 12.5, "humidity": float64(81)},
		"weather": []any{
			map[string]any{"main": "Clouds", "description": "overcast clouds"},
		},
		"cod": float64(200),
	}
	assert.Equal(t, expected, payload)
}

func TestClientFetchForecastPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(`{"list":[],"city":{"name":"Paris"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "metric", time.Second)
	payload, err := c.Fetch(context.Background(), "Paris", domain.ForecastWeek)
	require.NoError(t, err)
	assert.Contains(t, payload, "list")
}

func TestClientFetchNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "metric", time.Second)
	payload, err := c.Fetch(context.Background(), "Atlantis", domain.ForecastCurrent)
	assert.Nil(t, payload)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "city not found")
}

func TestClientFetchInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "metric", time.Second)
	_, err := c.Fetch(context.Background(), "London", domain.ForecastCurrent)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestClientFetchNetworkFailureRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	c := NewClient(baseURL, "super-secret", "metric", time.Second)
	payload, err := c.Fetch(context.Background(), "London", domain.ForecastCurrent)
	assert.Nil(t, payload)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestClientFetchUnknownKindMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c := NewClient(server.URL, "key", "metric", time.Second)
	_, err := c.Fetch(context.Background(), "London", domain.ForecastKind("daily"))
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Zero(t, hits.Load())
}
