package presenter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/spf13/cast"
)

const (
	ruleWidth      = 80
	summaryEntries = 3
	notAvailable   = "N/A"
)

// timeLayouts are the start-time notations seen in meteogram entries.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// FormatForecastTable renders up to hours entries as an aligned table followed by a
// summary of the first three entries. now only stamps the banner.
func FormatForecastTable(forecast model.ForecastResponse, hours int, now time.Time) string {
	if len(forecast) == 0 {
		return "No forecast data available"
	}

	rule := strings.Repeat("=", ruleWidth)
	thin := strings.Repeat("-", ruleWidth)

	out := []string{
		rule,
		"Weather Forecast - " + now.Format("2006-01-02 15:04"),
		"Location: " + locationOr(forecast, "Unknown location"),
		rule,
	}

	entries, _ := forecast.TimeEntries()
	if len(entries) == 0 {
		out = append(out, "\nNo forecast data available")
		return strings.Join(out, "\n")
	}

	out = append(out,
		fmt.Sprintf("\n%5s | %5s | %12s | %6s | %20s", "Time", "Temp", "Wind", "Precip", "Weather"),
		thin,
	)

	if hours < 0 {
		hours = 0
	}
	if hours > len(entries) {
		hours = len(entries)
	}
	for _, entry := range entries[:hours] {
		if _, ok := entry.(map[string]interface{}); !ok {
			continue
		}
		temp := attr(entry, "temperature", "value", notAvailable)
		if temp != notAvailable {
			temp += "°C"
		}
		wind := attr(entry, "windSpeed", "mps", notAvailable) + " m/s " + attr(entry, "windDirection", "name", notAvailable)
		precip := attr(entry, "precipitation", "value", "0") + " mm"
		weather := attr(entry, "phenomen", "et", notAvailable)

		out = append(out, fmt.Sprintf("%5s | %5s | %12s | %6s | %20s", clock(attr(entry, "@attributes", "from", "")), temp, wind, precip, weather))
	}

	out = append(out, "\n"+rule, "NEXT 3 HOURS SUMMARY:", thin)
	if len(entries) >= summaryEntries {
		out = append(out, summary(entries[:summaryEntries])...)
	}
	return strings.Join(out, "\n")
}

func summary(entries []interface{}) []string {
	var temps, precips []float64
	var labels []string
	seen := make(map[string]bool)

	for _, entry := range entries {
		if _, ok := entry.(map[string]interface{}); !ok {
			continue
		}
		if v, ok := numeric(entry, "temperature", "value"); ok {
			temps = append(temps, v)
		}
		if v, ok := numeric(entry, "precipitation", "value"); ok {
			precips = append(precips, v)
		}
		if label := attr(entry, "phenomen", "et", ""); label != "" && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	var lines []string
	if len(temps) > 0 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, t := range temps {
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
		}
		lines = append(lines, fmt.Sprintf("Temperature: %.1f°C - %.1f°C", lo, hi))
	}
	if len(precips) > 0 {
		var total float64
		for _, p := range precips {
			total += p
		}
		lines = append(lines, fmt.Sprintf("Total precipitation: %.1f mm", total))
	}
	if len(labels) > 0 {
		lines = append(lines, "Conditions: "+strings.Join(labels, ", "))
	}
	return lines
}

// attr reads entry.<element>.@attributes.<name>, or entry.@attributes.<name> when element is "@attributes".
func attr(entry interface{}, element, name, def string) string {
	path := []string{element, "@attributes", name}
	if element == "@attributes" {
		path = []string{element, name}
	}
	v, ok := model.Dig(entry, path...)
	if !ok || v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

func numeric(entry interface{}, element, name string) (float64, bool) {
	s := attr(entry, element, name, "")
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

// clock renders an entry start time as HH:MM.
func clock(from string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, from); err == nil {
			return t.Format("15:04")
		}
	}
	if len(from) > 8 {
		return from[len(from)-8 : len(from)-3]
	}
	return from
}

func locationOr(forecast model.ForecastResponse, def string) string {
	v, ok := forecast["location"]
	if !ok || v == nil {
		return def
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
