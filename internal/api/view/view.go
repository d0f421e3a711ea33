package view

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/martijn/skyboard/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Pages are addressed by file
// name, e.g. "index.html".
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"get":      get,
		"first":    first,
		"round":    round,
		"unixTime": unixTime,
		"title":    title,
	}
}

// get walks nested JSON objects and returns nil for any missing step, so
// templates do not fail on partial provider payloads.
func get(v any, keys ...string) any {
	for _, key := range keys {
		m, ok := asMap(v)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.WeatherPayload:
		return m, true
	default:
		return nil, false
	}
}

// first returns the first element of a JSON array, or nil.
func first(v any) any {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	return list[0]
}

// round formats a JSON number with no decimals. Non-numbers pass through.
func round(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", math.Round(n))
	case int:
		return fmt.Sprintf("%d", n)
	case nil:
		return "-"
	default:
		return fmt.Sprint(n)
	}
}

// unixTime renders a provider epoch timestamp in UTC.
func unixTime(v any) string {
	n, ok := v.(float64)
	if !ok {
		return ""
	}
	return time.Unix(int64(n), 0).UTC().Format("Mon 02 Jan 15:04")
}

func title(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
