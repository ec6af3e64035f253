package api

import (
	"errors"
	"fmt"
)

// Error is a failure reported by the backend: a non-2xx status plus the
// message extracted from the response body. Anything else returned by
// the client (transport faults, timeouts, body decode failures) is not
// an *Error.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// AsError returns the *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
