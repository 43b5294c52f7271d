package model

// ForecastResponse is the provider's meteogram document, kept as decoded JSON.
// Time entries live under forecast.tabular.time in provider order.
type ForecastResponse map[string]interface{}

// ForecastQuery selects the location and language of a forecast request.
// At least one of Coordinates or LocationID should be set.
type ForecastQuery struct {
	Coordinates *Coordinates
	LocationID  string
	Language    string
}

// CurrentConditions is the display-ready projection of the first time entry.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`    // in Celsius
	Weather       string  `json:"weather"`        // localized phenomenon label
	WeatherEN     string  `json:"weather_en"`     // English label, may be empty
	WindSpeed     float64 `json:"wind_speed"`     // in m/s
	WindDirection string  `json:"wind_direction"` // compass label
	Precipitation float64 `json:"precipitation"`  // in mm
	ForecastTime  string  `json:"forecast_time"`  // ISO-8601 start of the bucket
	Location      string  `json:"location"`
}

// LocationDescriptor is one location search result.
type LocationDescriptor struct {
	Name        string                 `json:"name"`
	ID          string                 `json:"id"`
	Coordinates *Coordinates           `json:"coordinates,omitempty"`
	Raw         map[string]interface{} `json:"raw"`
}

// Dig follows a path of object keys from node and reports whether every step existed.
func Dig(node interface{}, path ...string) (interface{}, bool) {
	cur := node
	for _, key := range path {
		var obj map[string]interface{}
		switch v := cur.(type) {
		case map[string]interface{}:
			obj = v
		case ForecastResponse:
			obj = v
		default:
			return nil, false
		}
		next, ok := obj[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// TimeEntries returns the forecast.tabular.time list, or false when the path is missing or not a list.
func (f ForecastResponse) TimeEntries() ([]interface{}, bool) {
	v, ok := Dig(f, "forecast", "tabular", "time")
	if !ok {
		return nil, false
	}
	entries, ok := v.([]interface{})
	return entries, ok
}
