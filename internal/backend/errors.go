package backend

import (
	"errors"
	"fmt"
)

// Common backend client errors.
var (
	// ErrMissingBaseURL is returned when a client is constructed without
	// a backend base URL.
	ErrMissingBaseURL = errors.New("backend base URL is required")

	// ErrUnexpectedResponse is returned when the backend answers with a
	// body the client cannot decode.
	ErrUnexpectedResponse = errors.New("unexpected backend response")
)

// APIError is a non-2xx backend answer. Detail carries the backend's own
// message when the error body had one ({"detail": ...} or {"error": ...});
// it is preferred over the generic status text everywhere errors surface.
type APIError struct {
	Op     string
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("backend: %s failed with status %d", e.Op, e.Status)
}

// Message returns the text to show near the triggering control: the
// backend-provided detail when present, the generic form otherwise.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorBody is the backend's error envelope. FastAPI-style backends use
// "detail"; the booking endpoints sometimes use "error".
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

func (b errorBody) message() string {
	if b.Detail != "" {
		return b.Detail
	}
	return b.Err
}
