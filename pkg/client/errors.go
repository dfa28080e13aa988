package client

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestFailedError is returned for any non-2xx response.
type RequestFailedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to %s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("failed to %s: %d", e.Op, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not a
// *RequestFailedError.
func StatusOf(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

func IsValidation(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}
