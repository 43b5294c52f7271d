package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"

	"github.com/alicebob/miniredis/v2"
)

// mockProvider serves the meteogram fixture and a wrapped autocomplete response.
type mockProvider struct {
	server       *httptest.Server
	forecastHits atomic.Int32
	failForecast atomic.Bool
}

func newMockProvider(fixture []byte) *mockProvider {
	p := &mockProvider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-content/themes/ilm2020/meteogram.php", func(w http.ResponseWriter, r *http.Request) {
		p.forecastHits.Add(1)
		if p.failForecast.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	})
	mux.HandleFunc("/wp-json/emhi/locationAutocomplete", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"name": "` + r.URL.Query().Get("query") + `", "id": "784", "coordinates": "59.0218292;25.0982156"}]}`))
	})
	p.server = httptest.NewServer(mux)
	return p
}

func loadFixture() []byte {
	b, err := os.ReadFile("../testdata/meteogram.json")
	if err != nil {
		panic(err)
	}
	return b
}

func startMiniRedis() *miniredis.Miniredis {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		panic(err)
	}
	return mr
}
