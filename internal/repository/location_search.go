package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/spf13/cast"
)

// SearchLocation queries the autocomplete endpoint for locations matching name.
// Response shapes other than a list, a {"data": [...]} wrapper or a single object yield an empty list.
func (r *forecastRepository) SearchLocation(ctx context.Context, name string) ([]model.LocationDescriptor, error) {
	params := url.Values{}
	params.Set("query", name)
	endpoint := r.baseURL + config.GetSearchPath() + "?" + params.Encode()

	body, err := r.get(ctx, "search", endpoint)
	if err != nil {
		return nil, err
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &FetchError{Op: "search", URL: endpoint, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	results := NormalizeLocations(data)
	config.GetLogger().Debugw("Location search", "query", name, "results", len(results))
	return results, nil
}

// NormalizeLocations flattens the autocomplete response shapes into descriptors.
// Every list element yields a descriptor; scalar elements carry no Raw object.
func NormalizeLocations(data interface{}) []model.LocationDescriptor {
	var items []interface{}
	switch v := data.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if wrapped, ok := v["data"]; ok {
			if list, ok := wrapped.([]interface{}); ok {
				items = list
				break
			}
		}
		items = []interface{}{v}
	default:
		return []model.LocationDescriptor{}
	}

	results := make([]model.LocationDescriptor, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			results = append(results, scalarDescriptor(item))
			continue
		}
		results = append(results, toDescriptor(obj))
	}
	return results
}

func toDescriptor(obj map[string]interface{}) model.LocationDescriptor {
	d := model.LocationDescriptor{
		Name: firstString(obj, "name", "label", "title", "value"),
		ID:   firstString(obj, "id", "locationId", "location_id"),
		Raw:  obj,
	}

	if s := firstString(obj, "coordinates"); s != "" {
		if c, err := model.ParseCoordinates(s); err == nil {
			d.Coordinates = &c
		}
	}
	if d.Coordinates == nil {
		lat, latErr := cast.ToFloat64E(firstValue(obj, "lat", "latitude"))
		lon, lonErr := cast.ToFloat64E(firstValue(obj, "lon", "lng", "longitude"))
		if latErr == nil && lonErr == nil && hasAny(obj, "lat", "latitude") && hasAny(obj, "lon", "lng", "longitude") {
			d.Coordinates = &model.Coordinates{Latitude: lat, Longitude: lon}
		}
	}
	return d
}

// scalarDescriptor wraps a bare list element; numbers are taken as location ids.
func scalarDescriptor(item interface{}) model.LocationDescriptor {
	s, err := cast.ToStringE(item)
	if err != nil {
		s = fmt.Sprint(item)
	}
	if _, isNumber := item.(float64); isNumber {
		return model.LocationDescriptor{ID: s}
	}
	return model.LocationDescriptor{Name: s}
}

func firstValue(obj map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			if s, err := cast.ToStringE(v); err == nil && s != "" {
				return s
			}
		}
	}
	return ""
}

func hasAny(obj map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return true
		}
	}
	return false
}
