package domain

import (
	"fmt"
	"strings"
)

// ForecastKind selects which weather view is requested.
type ForecastKind string

const (
	ForecastCurrent ForecastKind = "current"
	ForecastWeek    ForecastKind = "week"
)

// ParseForecastKind accepts the form values "current" and "week". "weekly"
// is accepted as an alias for "week".
func ParseForecastKind(s string) (ForecastKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return ForecastCurrent, nil
	case "week", "weekly":
		return ForecastWeek, nil
	default:
		return "", NewValidationError("forecast_type", fmt.Sprintf("invalid forecast type %q", s))
	}
}

func (k ForecastKind) Valid() bool {
	return k == ForecastCurrent || k == ForecastWeek
}

// WeatherQuery is built per request and never persisted.
type WeatherQuery struct {
	City string
	Kind ForecastKind
}

// WeatherPayload is the provider's JSON document, decoded without reshaping.
type WeatherPayload map[string]any
