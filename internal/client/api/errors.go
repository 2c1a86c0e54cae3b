package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures (connection refused, timeout)
// as opposed to responses the server actually produced.
var ErrUnavailable = errors.New("server unavailable")

// APIError carries a non-2xx response the server produced, with the
// human-readable message from the envelope. Callers surface Message directly
// as a form-level error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}
