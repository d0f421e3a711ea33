package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRequiresLogin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get(t, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Zero(t, env.weatherHits.Load())
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/change_default_city"} {
		w := env.get(t, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := env.postForm(t, "/weather", url.Values{"city": {"London"}, "forecast_type": {"current"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIndexShowsDefaultCityWeather(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")

	w := env.get(t, "/", session)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "London")
	assert.Contains(t, body, "Scattered clouds")
	assert.Equal(t, int32(1), env.weatherHits.Load())
}

func TestIndexWhenProviderDown(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")
	env.weatherDown.Store(true)

	w := env.get(t, "/", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable right now")
}

func TestWeatherCurrent(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")

	w := env.postForm(t, "/weather", url.Values{"city": {"Madrid"}, "forecast_type": {"current"}}, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Current weather in Madrid")
}

func TestWeatherWeekDefaultsToMainLocation(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")

	w := env.postForm(t, "/weather", url.Values{"city": {""}, "forecast_type": {"week"}}, session)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Forecast for London")
	assert.Contains(t, body, "Light rain")
}

func TestWeatherInvalidForecastType(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")

	w := env.postForm(t, "/weather", url.Values{"city": {"London"}, "forecast_type": {"hourly"}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotNil(t, findCookie(w, flash.CookieName))
	assert.Zero(t, env.weatherHits.Load())
}

func TestWeatherUpstreamFailureRedirects(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "wonderland", "London")
	session := env.login(t, "alice", "wonderland")
	env.weatherDown.Store(true)

	w := env.postForm(t, "/weather", url.Values{"city": {"London"}, "forecast_type": {"current"}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The flash is shown on the page the redirect lands on.
	home := env.get(t, "/", session, findCookie(w, flash.CookieName))
	assert.Contains(t, home.Body.String(), "Error fetching weather data. Please try again later.")
}
