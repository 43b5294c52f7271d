package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
)

// DumpForecast writes the raw forecast document to path for inspection.
func DumpForecast(path string, forecast model.ForecastResponse) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(forecast); err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DumpingForecastRepository wraps a ForecastRepository and saves every fetched forecast to a file.
// A failed write is logged and does not fail the fetch.
type DumpingForecastRepository struct {
	ForecastRepository
	path string
}

// NewDumpingForecastRepository wraps repo so fetched forecasts are written to path.
func NewDumpingForecastRepository(repo ForecastRepository, path string) *DumpingForecastRepository {
	return &DumpingForecastRepository{ForecastRepository: repo, path: path}
}

// GetForecast forwards to the wrapped repository, then dumps the document.
func (r *DumpingForecastRepository) GetForecast(ctx context.Context, query model.ForecastQuery) (model.ForecastResponse, error) {
	forecast, err := r.ForecastRepository.GetForecast(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := DumpForecast(r.path, forecast); err != nil {
		config.GetLogger().Errorw("Error saving forecast dump", "path", r.path, "error", err)
	} else {
		config.GetLogger().Infow("Saved forecast dump", "path", r.path)
	}
	return forecast, nil
}

var _ ForecastRepository = (*DumpingForecastRepository)(nil)
