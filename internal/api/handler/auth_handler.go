package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/dto"
	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/martijn/skyboard/internal/api/middleware"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{
		"title":         "Register",
		"username":      "",
		"main_location": "",
	})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryError, "Please fill in all fields")
		h.RegisterPage(c)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), form.Username, form.Password, form.MainLocation)
	if err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			c.Error(err)
			return
		}
		flash.Add(c, flash.CategoryError, ve.Message)
		render(c, http.StatusOK, "register.html", gin.H{
			"title":         "Register",
			"username":      form.Username,
			"main_location": form.MainLocation,
		})
		return
	}

	slog.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	flash.Add(c, flash.CategorySuccess, "User registered successfully!")
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"title":    "Log in",
		"username": "",
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryError, "Please enter your username and password")
		h.LoginPage(c)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !domain.IsAuthError(err) {
			c.Error(err)
			return
		}
		slog.WarnContext(c.Request.Context(), "login failed", "username", form.Username, "client_ip", c.ClientIP())
		flash.Add(c, flash.CategoryError, "Invalid username or password")
		render(c, http.StatusOK, "login.html", gin.H{
			"title":    "Log in",
			"username": form.Username,
		})
		return
	}

	middleware.SetSessionCookie(c, token, h.authService.SessionTTL(), h.secureCookie)
	slog.InfoContext(c.Request.Context(), "user logged in", "user_id", user.ID)
	flash.Add(c, flash.CategorySuccess, "Login successful!")
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout. The cookie is cleared even if the server-side
// session could not be removed.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to end session", "error", err)
		}
	}

	middleware.ClearSessionCookie(c, h.secureCookie)
	flash.Add(c, flash.CategorySuccess, "You have been logged out")
	c.Redirect(http.StatusFound, "/")
}
