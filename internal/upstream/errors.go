package upstream

import (
	"errors"
	"net/http"
)

// ErrUnauthorized classifies 401/403 responses so callers can match with
// errors.Is instead of inspecting message text.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the server's verbatim error message for a non-2xx reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}
