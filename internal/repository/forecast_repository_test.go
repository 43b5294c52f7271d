package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile("../../testdata/meteogram.json")
	require.NoError(t, err)
	return b
}

func TestNewForecastRepository(t *testing.T) {
	repo := NewForecastRepository("http://example.test")
	if repo == nil {
		t.Fatal("Expected repository to be created")
	}
	r := repo.(*forecastRepository)
	assert.Equal(t, 2*time.Second, r.httpClient.Timeout)
	assert.Equal(t, "et,en;q=0.9", r.header.Get("Accept-Language"))
}

func TestGetForecast_Success(t *testing.T) {
	fixture := loadFixture(t)
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotReq = req
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	repo := NewForecastRepository(srv.URL, srv.Client())
	coords := model.Coordinates{Latitude: 59.0218292, Longitude: 25.0982156}
	forecast, err := repo.GetForecast(context.Background(), model.ForecastQuery{Coordinates: &coords})
	require.NoError(t, err)

	assert.Equal(t, "Toomja, Raplamaa", forecast["location"])
	require.NotNil(t, gotReq)
	assert.Equal(t, "/wp-content/themes/ilm2020/meteogram.php", gotReq.URL.Path)
	assert.Equal(t, "59.0218292;25.0982156", gotReq.URL.Query().Get("coordinates"))
	assert.Equal(t, "et", gotReq.URL.Query().Get("lang"))
	assert.Empty(t, gotReq.URL.Query().Get("locationId"))
	assert.Contains(t, gotReq.Header.Get("User-Agent"), "Mozilla/5.0")
	assert.Contains(t, gotReq.Header.Get("Accept"), "application/json")
}

func TestGetForecast_LocationIDAndLanguage(t *testing.T) {
	var query string
	client := &http.Client{
		Transport: RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			query = req.URL.RawQuery
			return NewStubClient(http.StatusOK, `{"location": "Tallinn"}`).Transport.RoundTrip(req)
		}),
	}
	repo := NewForecastRepository("http://example.test", client)

	_, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "784", Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, query, "locationId=784")
	assert.Contains(t, query, "lang=en")
	assert.NotContains(t, query, "coordinates")
}

func TestGetForecast_ErrorCases(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantIs     error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantStatus: 500, wantIs: ErrUnexpectedStatus},
		{name: "not found", status: http.StatusNotFound, body: "missing", wantStatus: 404, wantIs: ErrUnexpectedStatus},
		{name: "not json", status: http.StatusOK, body: "<html>maintenance</html>"},
		{name: "json array", status: http.StatusOK, body: `[1, 2]`},
		{name: "json null", status: http.StatusOK, body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewForecastRepository("http://example.test", NewStubClient(tt.status, tt.body))
			forecast, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "1"})
			require.Error(t, err)
			assert.Nil(t, forecast)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr), "expected FetchError, got %T", err)
			assert.Equal(t, "forecast", fetchErr.Op)
			assert.Equal(t, tt.wantStatus, fetchErr.StatusCode)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			}
		})
	}
}

func TestGetForecast_TruncatesErrorBody(t *testing.T) {
	repo := NewForecastRepository("http://example.test", NewStubClient(http.StatusBadGateway, strings.Repeat("x", 2000)))
	_, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "1"})
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 700)
}

func TestGetForecast_TransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	client := &http.Client{
		Transport: RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, transportErr
		}),
	}
	repo := NewForecastRepository("http://example.test", client)

	_, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "1"})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.True(t, errors.Is(err, transportErr))
}

func TestGetForecast_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-req.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond
	repo := NewForecastRepository(srv.URL, client)

	_, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "1"})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestDumpForecast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	forecast := model.ForecastResponse{"location": "Türi <vald>"}

	require.NoError(t, DumpForecast(path, forecast))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"location\": \"Türi <vald>\"\n}\n", string(b))
}

func TestDumpForecast_BadPath(t *testing.T) {
	err := DumpForecast(filepath.Join(t.TempDir(), "missing", "weather.json"), model.ForecastResponse{})
	assert.Error(t, err)
}

func TestDumpingForecastRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	repo := NewDumpingForecastRepository(NewForecastRepository("http://example.test", NewStubClient(http.StatusOK, `{"location": "Toomja"}`)), path)

	forecast, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "784"})
	require.NoError(t, err)
	assert.Equal(t, "Toomja", forecast["location"])

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"location\": \"Toomja\"\n}\n", string(b))
}

func TestDumpingForecastRepository_FetchErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	repo := NewDumpingForecastRepository(NewForecastRepository("http://example.test", NewStubClient(http.StatusBadGateway, "down")), path)

	_, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "784"})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDumpingForecastRepository_WriteFailureKeepsForecast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "weather.json")
	repo := NewDumpingForecastRepository(NewForecastRepository("http://example.test", NewStubClient(http.StatusOK, `{"location": "Toomja"}`)), path)

	forecast, err := repo.GetForecast(context.Background(), model.ForecastQuery{LocationID: "784"})
	require.NoError(t, err)
	assert.Equal(t, "Toomja", forecast["location"])
}
