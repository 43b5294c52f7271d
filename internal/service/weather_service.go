package service

import (
	"context"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/fakhrymubarak/weather-eink/internal/repository"
)

type WeatherServiceInterface interface {
	GetCurrentConditions(ctx context.Context, query model.ForecastQuery) (*model.CurrentConditions, error)
	GetForecast(ctx context.Context, query model.ForecastQuery) (model.ForecastResponse, error)
}

type WeatherService struct {
	ForecastRepo repository.ForecastRepository
}

// NewWeatherService builds a service on the given repository, or on the configured provider when none is passed.
func NewWeatherService(repo ...repository.ForecastRepository) *WeatherService {
	var r repository.ForecastRepository
	if len(repo) > 0 && repo[0] != nil {
		r = repo[0]
	} else {
		r = repository.NewForecastRepository(config.GetBaseURL())
	}
	return &WeatherService{ForecastRepo: r}
}

// GetForecast fetches the raw forecast document.
func (s *WeatherService) GetForecast(ctx context.Context, query model.ForecastQuery) (model.ForecastResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	forecast, err := s.ForecastRepo.GetForecast(ctx, query)
	if err != nil {
		config.GetLogger().Errorw("Error fetching forecast", "error", err)
		return nil, err
	}
	return forecast, nil
}

// GetCurrentConditions fetches the forecast and projects its first time entry.
// The result is nil whenever err is non-nil.
func (s *WeatherService) GetCurrentConditions(ctx context.Context, query model.ForecastQuery) (*model.CurrentConditions, error) {
	forecast, err := s.GetForecast(ctx, query)
	if err != nil {
		return nil, err
	}
	conditions, err := extractCurrentConditions(forecast)
	if err != nil {
		config.GetLogger().Errorw("Error parsing weather data", "error", err)
		return nil, err
	}
	return conditions, nil
}

var _ WeatherServiceInterface = (*WeatherService)(nil)
