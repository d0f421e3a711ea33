package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/adapter/openweather"
	"github.com/martijn/skyboard/internal/api/middleware"
	"github.com/martijn/skyboard/internal/api/view"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/service"
	"github.com/martijn/skyboard/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/require"
)

const stubCurrent = `{"name":"%s","main":{"temp":14.2,"feels_like":13.1,"temp_min":12,"temp_max":16,"humidity":70,"pressure":1012},"weather":[{"description":"scattered clouds"}],"wind":{"speed":3.6}}`

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqlite.DB
	router      *gin.Engine
	authService *service.AuthService
	weatherHits *atomic.Int32
	weatherDown *atomic.Bool
}

// setupTestEnv wires real services to an in-memory database and a stub
// weather provider.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { db.Close() })

	hits := new(atomic.Int32)
	down := new(atomic.Bool)
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		city := r.URL.Query().Get("q")
		if r.URL.Path == "/forecast" {
			w.Write([]byte(`{"city":{"name":"` + city + `"},"list":[{"dt":1700000000,"main":{"temp":9.4},"weather":[{"description":"light rain"}]}]}`))
			return
		}
		fmt.Fprintf(w, stubCurrent, city)
	}))
	t.Cleanup(provider.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, sqlite.NewSessionRepository(db), []byte("test-secret"), time.Hour)
	userService := service.NewUserService(userRepo)
	weatherService := service.NewWeatherService(openweather.NewClient(provider.URL, "test-key", "metric", time.Second), logger)

	templates, err := view.Templates()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.LoadUser(authService, false))

	authHandler := NewAuthHandler(authService, false)
	weatherHandler := NewWeatherHandler(weatherService)
	userHandler := NewUserHandler(userService)

	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	protected := router.Group("/", middleware.RequireAuth())
	protected.GET("", weatherHandler.Index)
	protected.POST("weather", weatherHandler.Weather)
	protected.GET("change_default_city", userHandler.ChangeDefaultCityPage)
	protected.POST("change_default_city", userHandler.ChangeDefaultCity)

	return &testEnv{
		db:          db,
		router:      router,
		authService: authService,
		weatherHits: hits,
		weatherDown: down,
	}
}

// get performs a GET request with the given cookies
func (env *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST with the given cookies
func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the service
func (env *testEnv) register(t *testing.T, username, password, city string) *domain.User {
	t.Helper()

	user, err := env.authService.Register(t.Context(), username, password, city)
	require.NoError(t, err)
	return user
}

// login posts the login form and returns the session cookie
func (env *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	w := env.postForm(t, "/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	cookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie, "session cookie not set")
	return cookie
}

// findCookie returns the last Set-Cookie with the given name
func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
