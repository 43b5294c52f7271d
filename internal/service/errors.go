package service

import (
	"errors"
	"fmt"
)

// Causes carried by ExtractionError; match them with errors.Is.
var (
	// ErrNoTimeEntries means forecast.tabular.time is an empty list.
	ErrNoTimeEntries = errors.New("no time entries")
	// ErrMissingField means forecast.tabular.time or a required field of its first entry is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidValue means a field is present but cannot be read as the expected type.
	ErrInvalidValue = errors.New("invalid value")
)

// ExtractionError reports a forecast document that lacks the expected shape.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
