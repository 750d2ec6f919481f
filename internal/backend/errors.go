// Package backend is the client for the remote résumé service that persists documents
// and produces analysis and job-match reports.
package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is a non-2xx response from the service
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// IsConflict reports whether err is a version conflict on update.
func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

// IsNotFound reports whether err is a missing resource.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the bearer token was rejected.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func statusOf(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// DecodeError reports a 2xx response whose body could not be used
type DecodeError struct {
	Operation string
	Cause     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Operation, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
