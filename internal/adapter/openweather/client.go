package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/martijn/skyboard/internal/core/domain"
)

const (
	currentPath  = "/weather"
	forecastPath = "/forecast"

	// maxErrorBody bounds how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// ErrUnknownKind is returned without contacting the provider.
var ErrUnknownKind = errors.New("unknown forecast kind")

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("openweather returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("openweather returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// Client fetches current conditions and 5-day forecasts from OpenWeatherMap
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
}

// NewClient creates a new OpenWeatherMap client
func NewClient(baseURL, apiKey, units string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		units:   units,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL builds the provider URL for a city and forecast kind.
func (c *Client) URL(city string, kind domain.ForecastKind) (string, error) {
	var path string
	switch kind {
	case domain.ForecastCurrent:
		path = currentPath
	case domain.ForecastWeek:
		path = forecastPath
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("units", c.units)
	query.Set("appid", c.apiKey)

	return c.baseURL + path + "?" + query.Encode(), nil
}

// Fetch issues a GET for city and returns the decoded JSON body
func (c *Client) Fetch(ctx context.Context, city string, kind domain.ForecastKind) (domain.WeatherPayload, error) {
	endpoint, err := c.URL(city, kind)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %s: %s", city, redact(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload domain.WeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return payload, nil
}

// redact strips the API key from transport errors, which embed the URL.
func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(secret), "REDACTED")
}
