package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/skyboard/internal/api/dto"
	"github.com/martijn/skyboard/internal/api/flash"
	"github.com/martijn/skyboard/internal/api/middleware"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/service"
)

var weatherPages = map[domain.ForecastKind]string{
	domain.ForecastCurrent: "weather_current.html",
	domain.ForecastWeek:    "weather_week.html",
}

type WeatherHandler struct {
	weatherService *service.WeatherService
}

func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

// Index handles GET /
func (h *WeatherHandler) Index(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var current domain.WeatherPayload
	if user.MainLocation != "" {
		current = h.weatherService.FetchWeather(c.Request.Context(), user.MainLocation, domain.ForecastCurrent)
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"title":                 "Dashboard",
		"main_location":         user.MainLocation,
		"main_location_weather": current,
	})
}

// Weather handles POST /weather
func (h *WeatherHandler) Weather(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.WeatherForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(err)
		return
	}

	query := domain.WeatherQuery{City: strings.TrimSpace(form.City)}
	if query.City == "" {
		query.City = user.MainLocation
	}
	if query.City == "" {
		flash.Add(c, flash.CategoryError, "Please enter a city name or set your main location")
		c.Redirect(http.StatusFound, "/")
		return
	}

	kind, err := domain.ParseForecastKind(form.ForecastType)
	if err != nil {
		flash.Add(c, flash.CategoryError, "Invalid forecast type")
		c.Redirect(http.StatusFound, "/")
		return
	}
	query.Kind = kind

	payload := h.weatherService.FetchWeather(c.Request.Context(), query.City, query.Kind)
	if payload == nil {
		flash.Add(c, flash.CategoryError, "Error fetching weather data. Please try again later.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	render(c, http.StatusOK, weatherPages[query.Kind], gin.H{
		"title":   query.City,
		"city":    query.City,
		"kind":    string(query.Kind),
		"weather": payload,
	})
}
