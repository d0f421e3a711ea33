package dto

// RegisterForm is posted by the registration page. Emptiness is checked by
// the auth service so the page can show a single message for all fields.
type RegisterForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	MainLocation string `form:"main_location"`
}

// LoginForm is posted by the login page
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// WeatherForm is posted by the dashboard search box
type WeatherForm struct {
	City         string `form:"city"`
	ForecastType string `form:"forecast_type"`
}

// DefaultCityForm is posted by the change-default-city page
type DefaultCityForm struct {
	MainLocation string `form:"main_location"`
}
