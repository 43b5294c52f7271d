package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCoordinates is returned when a "lat;lon" string cannot be parsed.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseCoordinates parses the provider's "lat;lon" notation.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("%w: %q: expected \"lat;lon\"", ErrInvalidCoordinates, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, parts[1])
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("%w: %q out of range", ErrInvalidCoordinates, s)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// String renders the coordinates as "lat;lon".
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ";" + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
