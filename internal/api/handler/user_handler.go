package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/dto"
	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/martijn/skyboard/internal/api/middleware"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ChangeDefaultCityPage handles GET /change_default_city
func (h *UserHandler) ChangeDefaultCityPage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	render(c, http.StatusOK, "change_default_city.html", gin.H{
		"title":         "Default city",
		"main_location": user.MainLocation,
	})
}

// ChangeDefaultCity handles POST /change_default_city
func (h *UserHandler) ChangeDefaultCity(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.DefaultCityForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(err)
		return
	}

	if err := h.userService.SetDefaultCity(c.Request.Context(), user, form.MainLocation); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			c.Error(err)
			return
		}
		flash.Add(c, flash.CategoryError, ve.Message)
		h.ChangeDefaultCityPage(c)
		return
	}

	flash.Add(c, flash.CategorySuccess, "Main location updated successfully!")
	c.Redirect(http.StatusFound, "/")
}
