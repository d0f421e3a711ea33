package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/martijn/skyboard/internal/api/middleware"
)

// render adds the shared layout data (user, pending flashes) and writes the
// named page.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["user"] = user
	}
	data["flashes"] = flash.Pop(c)
	c.HTML(status, page, data)
}
