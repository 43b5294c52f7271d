package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDig(t *testing.T) {
	var doc ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(`{"a": {"b": {"c": "3.4"}, "n": null}}`), &doc))

	v, ok := Dig(doc, "a", "b", "c")
	assert.True(t, ok)
	assert.Equal(t, "3.4", v)

	v, ok = Dig(doc, "a", "n")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = Dig(doc, "a", "x")
	assert.False(t, ok)

	_, ok = Dig(doc, "a", "b", "c", "d")
	assert.False(t, ok)
}

func TestTimeEntries(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantOK  bool
	}{
		{name: "two entries", body: `{"forecast": {"tabular": {"time": [{}, {}]}}}`, wantLen: 2, wantOK: true},
		{name: "empty list", body: `{"forecast": {"tabular": {"time": []}}}`, wantLen: 0, wantOK: true},
		{name: "missing tabular", body: `{"forecast": {}}`, wantOK: false},
		{name: "single object instead of list", body: `{"forecast": {"tabular": {"time": {}}}}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc ForecastResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &doc))
			entries, ok := doc.TimeEntries()
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}
