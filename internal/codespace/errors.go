package codespace

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response. Wrong passwords surface
// here too; the server gives no distinct error kind for them.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

// Error returns the server-provided message, or a status-coded fallback.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return statusMessage(e.Status)
}

func statusMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a server response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ValidationError reports a form field that failed client-side checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
