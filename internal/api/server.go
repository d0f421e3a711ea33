package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/handler"
	"github.com/martijn/skyboard/internal/api/middleware"
	"github.com/martijn/skyboard/internal/api/view"
	"github.com/martijn/skyboard/internal/core/service"
	"github.com/martijn/skyboard/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewServer creates a new web server
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authService *service.AuthService,
	userService *service.UserService,
	weatherService *service.WeatherService,
) (*Server, error) {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := view.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.LoadUser(authService, cfg.CookieSecure))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure)
	weatherHandler := handler.NewWeatherHandler(weatherService)
	userHandler := handler.NewUserHandler(userService)

	// Public routes (no auth required)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Protected routes (auth required)
	protected := router.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("", weatherHandler.Index)
		protected.POST("weather", weatherHandler.Weather)
		protected.GET("change_default_city", userHandler.ChangeDefaultCityPage)
		protected.POST("change_default_city", userHandler.ChangeDefaultCity)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Leaves room for the upstream weather call.
		WriteTimeout:   s.config.OpenWeatherTimeout + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
