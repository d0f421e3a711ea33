package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/service"
)

const (
	SessionCookieName = "skyboard_session"
	UserContextKey    = "user"
	LoginPath         = "/login"
)

// LoadUser resolves the session cookie, if any, and stores the user in the
// context. It never rejects a request; see RequireAuth.
func LoadUser(authService *service.AuthService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(UserContextKey, user)
		case domain.IsAuthError(err):
			ClearSessionCookie(c, secureCookie)
		default:
			slog.ErrorContext(c.Request.Context(), "session lookup failed", "error", err)
		}

		c.Next()
	}
}

// RequireAuth redirects callers without a valid session to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			flash.Add(c, flash.CategoryInfo, "Please log in to access this page.")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
