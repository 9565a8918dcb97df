package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// MsgNetworkError is shown when the service could not be reached at all.
const MsgNetworkError = "Network error. Please try again."

// APIError is a failure reported by the portfolio service, either through a
// non-2xx status or through success=false in a 2xx envelope.
type APIError struct {
	Status  int
	Message string
	// Err classifies the failure (ErrUnauthorized, ErrNotFound,
	// ErrUnavailable) and is nil for other statuses.
	Err error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// Message returns the text to show for err: the server message verbatim
// when there is one, fallback for other server-reported failures, and
// MsgNetworkError when the service was unreachable.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if !errors.Is(apiErr.Err, ErrUnavailable) {
			return fallback
		}
	}
	return MsgNetworkError
}
