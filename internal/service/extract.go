package service

import (
	"fmt"
	"strings"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/spf13/cast"
)

// ExtractCurrentConditions projects the first time entry of forecast into display fields.
// It returns nil when the document lacks an expected field, after logging why.
func ExtractCurrentConditions(forecast model.ForecastResponse) *model.CurrentConditions {
	conditions, err := extractCurrentConditions(forecast)
	if err != nil {
		config.GetLogger().Errorw("Error parsing weather data", "error", err)
		return nil
	}
	return conditions
}

func extractCurrentConditions(forecast model.ForecastResponse) (*model.CurrentConditions, error) {
	entries, ok := forecast.TimeEntries()
	if !ok {
		return nil, &ExtractionError{Path: "forecast.tabular.time", Err: ErrMissingField}
	}
	if len(entries) == 0 {
		return nil, &ExtractionError{Path: "forecast.tabular.time", Err: ErrNoTimeEntries}
	}
	current := entries[0]

	temp, err := floatField(current, "temperature", "@attributes", "value")
	if err != nil {
		return nil, err
	}
	weather, err := stringField(current, "phenomen", "@attributes", "et")
	if err != nil {
		return nil, err
	}
	weatherEN, err := stringField(current, "phenomen", "@attributes", "en")
	if err != nil {
		weatherEN = ""
	}
	windSpeed, err := floatField(current, "windSpeed", "@attributes", "mps")
	if err != nil {
		return nil, err
	}
	windDir, err := stringField(current, "windDirection", "@attributes", "name")
	if err != nil {
		return nil, err
	}
	precip, err := floatField(current, "precipitation", "@attributes", "value")
	if err != nil {
		return nil, err
	}
	timeFrom, err := stringField(current, "@attributes", "from")
	if err != nil {
		return nil, err
	}

	return &model.CurrentConditions{
		Temperature:   temp,
		Weather:       weather,
		WeatherEN:     weatherEN,
		WindSpeed:     windSpeed,
		WindDirection: windDir,
		Precipitation: precip,
		ForecastTime:  timeFrom,
		Location:      locationLabel(forecast),
	}, nil
}

func field(entry interface{}, path ...string) (interface{}, error) {
	v, ok := model.Dig(entry, path...)
	if !ok {
		return nil, &ExtractionError{Path: "time[0]." + strings.Join(path, "."), Err: ErrMissingField}
	}
	return v, nil
}

func floatField(entry interface{}, path ...string) (float64, error) {
	v, err := field(entry, path...)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || v == nil {
		return 0, &ExtractionError{Path: "time[0]." + strings.Join(path, "."), Err: fmt.Errorf("%w: %v", ErrInvalidValue, v)}
	}
	return f, nil
}

func stringField(entry interface{}, path ...string) (string, error) {
	v, err := field(entry, path...)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &ExtractionError{Path: "time[0]." + strings.Join(path, "."), Err: fmt.Errorf("%w: %v", ErrInvalidValue, v)}
	}
	return s, nil
}

// locationLabel returns the document's location label, "Unknown" when absent.
func locationLabel(forecast model.ForecastResponse) string {
	v, ok := forecast["location"]
	if !ok || v == nil {
		return "Unknown"
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
