package backend

import (
	"fmt"
	"strings"
)

// APIError represents a non-2xx response from the backend. The backend
// reports failures as plain error text in the response body.
type APIError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend error [%s]: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("backend error [%s] status %d: %s", e.Endpoint, e.Status, body)
}

// ParseError represents a response body that did not match the expected
// shape for an endpoint.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
