package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
)

// maxErrorBody caps how much of a failed response body is kept in a FetchError.
const maxErrorBody = 500

// ForecastRepository defines the interface for provider data access
type ForecastRepository interface {
	GetForecast(ctx context.Context, query model.ForecastQuery) (model.ForecastResponse, error)
	SearchLocation(ctx context.Context, name string) ([]model.LocationDescriptor, error)
}

// forecastRepository implements ForecastRepository
type forecastRepository struct {
	baseURL    string
	httpClient *http.Client
	header     http.Header
}

// NewForecastRepository creates a repository for the provider at baseURL.
// Without an explicit client it uses one bounded by the configured request timeout.
func NewForecastRepository(baseURL string, httpClient ...*http.Client) ForecastRepository {
	client := &http.Client{Timeout: config.GetRequestTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	header := make(http.Header)
	header.Set("User-Agent", config.GetUserAgent())
	header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	header.Set("Accept-Language", config.GetAcceptLanguage())
	return &forecastRepository{
		baseURL:    baseURL,
		httpClient: client,
		header:     header,
	}
}

// GetForecast fetches the meteogram for a coordinate pair and/or location id.
func (r *forecastRepository) GetForecast(ctx context.Context, query model.ForecastQuery) (model.ForecastResponse, error) {
	lang := query.Language
	if lang == "" {
		lang = config.GetDefaultLanguage()
	}
	params := url.Values{}
	params.Set("lang", lang)
	if query.LocationID != "" {
		params.Set("locationId", query.LocationID)
	}
	if query.Coordinates != nil {
		params.Set("coordinates", query.Coordinates.String())
	}

	endpoint := r.baseURL + config.GetForecastPath() + "?" + params.Encode()
	body, err := r.get(ctx, "forecast", endpoint)
	if err != nil {
		return nil, err
	}

	var forecast model.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, &FetchError{Op: "forecast", URL: endpoint, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if forecast == nil {
		return nil, &FetchError{Op: "forecast", URL: endpoint, Err: errors.New("empty response document")}
	}

	config.GetLogger().Debugw("Fetched forecast", "url", endpoint, "bytes", len(body))
	return forecast, nil
}

// get performs one GET with the session headers and returns the body of a 2xx response.
func (r *forecastRepository) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for k, v := range r.header {
		req.Header[k] = v
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(body)
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		return nil, &FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, excerpt)}
	}
	return body, nil
}
