package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/martijn/skyboard/internal/core/domain"
)

// WeatherClient talks to the upstream weather provider.
type WeatherClient interface {
	Fetch(ctx context.Context, city string, kind domain.ForecastKind) (domain.WeatherPayload, error)
}

type WeatherService struct {
	client WeatherClient
	logger *slog.Logger
}

func NewWeatherService(client WeatherClient, logger *slog.Logger) *WeatherService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherService{
		client: client,
		logger: logger,
	}
}

// FetchWeather returns the provider payload for city, or nil on any failure.
// The failure cause is logged, never returned.
func (s *WeatherService) FetchWeather(ctx context.Context, city string, kind domain.ForecastKind) domain.WeatherPayload {
	if !kind.Valid() {
		s.logger.WarnContext(ctx, "unknown forecast kind", "kind", string(kind), "city", city)
		return nil
	}

	payload, err := s.client.Fetch(ctx, city, kind)
	if err != nil {
		attrs := []any{"city", city, "kind", string(kind), "error", err}
		var statusErr interface{ HTTPStatus() int }
		if errors.As(err, &statusErr) {
			attrs = append(attrs, "status", statusErr.HTTPStatus())
		}
		s.logger.WarnContext(ctx, "weather fetch failed", attrs...)
		return nil
	}

	return payload
}
