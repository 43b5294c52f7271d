package repository

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus marks a provider response with a non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected status")

// FetchError reports a failed provider request: transport, HTTP status or body decoding.
type FetchError struct {
	Op         string // "forecast" or "search"
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
