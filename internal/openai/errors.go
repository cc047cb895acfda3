package openai

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for provider failures.
var (
	ErrProviderRequest = errors.New("provider request failed")
	ErrEmptyCompletion = errors.New("provider returned no choices")
)

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return ErrProviderRequest
}

// Temporary reports whether the request is worth repeating.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
