package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorPage is the template rendered for unexpected failures.
const ErrorPage = "error.html"

// ErrorHandlerMiddleware handles panics and errors
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(c.Request.Context(), "panic while handling request",
					"path", c.Request.URL.Path,
					"panic", err,
				)
				c.HTML(http.StatusInternalServerError, ErrorPage, gin.H{
					"title": "Error",
				})
				c.Abort()
			}
		}()

		c.Next()

		// Check if there are any errors
		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			slog.ErrorContext(c.Request.Context(), "request failed",
				"path", c.Request.URL.Path,
				"error", err.Err,
			)
			if !c.Writer.Written() {
				c.HTML(http.StatusInternalServerError, ErrorPage, gin.H{
					"title": "Error",
				})
			}
		}
	}
}
