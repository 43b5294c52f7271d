// Package presenter renders current conditions and forecast tables as display text.
package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/weather-eink/internal/model"
)

const (
	Unavailable        = "Weather data unavailable"
	MinimalUnavailable = "N/A"
)

// Format names one of the fixed output layouts.
type Format string

const (
	FormatNameSimple   Format = "simple"
	FormatNameMinimal  Format = "minimal"
	FormatNameDetailed Format = "detailed"
	FormatNameJSON     Format = "json"
)

// Formats lists the accepted format names in help order.
var Formats = []Format{FormatNameSimple, FormatNameMinimal, FormatNameDetailed, FormatNameJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want simple, minimal, detailed or json)", s)
}

// Render formats conditions in the given layout.
func Render(f Format, c *model.CurrentConditions) string {
	switch f {
	case FormatNameMinimal:
		return FormatMinimal(c)
	case FormatNameDetailed:
		return FormatDetailed(c)
	case FormatNameJSON:
		return FormatJSON(c)
	default:
		return FormatSimple(c)
	}
}

// FormatSimple renders a one-line summary, e.g. "3.5°C • Vahelduv pilvisus • Tuul 4.2 m/s".
func FormatSimple(c *model.CurrentConditions) string {
	if c == nil {
		return Unavailable
	}
	return fmt.Sprintf("%.1f°C • %s • Tuul %s m/s", c.Temperature, c.Weather, decimal(c.WindSpeed))
}

// FormatMinimal renders a rounded temperature and an abbreviated label for small screens.
func FormatMinimal(c *model.CurrentConditions) string {
	if c == nil {
		return MinimalUnavailable
	}
	short := strings.ReplaceAll(c.Weather, "pilvisus", "pilv")
	short = strings.ReplaceAll(short, "Vahelduv", "Vahel.")
	return fmt.Sprintf("%.0f° %s", c.Temperature, short)
}

// FormatDetailed renders a multi-line block: location, temperature, conditions in both languages,
// wind, precipitation and forecast time.
func FormatDetailed(c *model.CurrentConditions) string {
	if c == nil {
		return Unavailable
	}
	lines := []string{
		"Location: " + c.Location,
		fmt.Sprintf("Temperature: %.1f°C", c.Temperature),
		fmt.Sprintf("Conditions: %s (%s)", c.Weather, c.WeatherEN),
		fmt.Sprintf("Wind: %.1f m/s %s", c.WindSpeed, c.WindDirection),
		fmt.Sprintf("Precipitation: %.1f mm", c.Precipitation),
		"Forecast time: " + c.ForecastTime,
	}
	return strings.Join(lines, "\n")
}

// FormatJSON renders conditions as indented JSON without HTML escaping.
func FormatJSON(c *model.CurrentConditions) string {
	if c == nil {
		return Unavailable
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return Unavailable
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// decimal prints f in its shortest form, keeping one decimal for whole numbers (4 -> "4.0").
// Magnitudes below 1e-4 or from 1e16 up switch to exponent form (1e-05, 1e+16).
func decimal(f float64) string {
	if a := math.Abs(f); a != 0 && !math.IsInf(f, 0) && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
