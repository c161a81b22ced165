package shopapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for every 401, whichever endpoint produced it.
	ErrUnauthorized = errors.New("shopapi: unauthorized")
	// ErrUnavailable wraps transport failures where no response was received.
	ErrUnavailable = errors.New("shopapi: backend unavailable")
)

// Error is a non-2xx response from the commerce backend.
type Error struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("shopapi: %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsClientError reports whether the backend rejected the request itself (4xx).
func IsClientError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}
