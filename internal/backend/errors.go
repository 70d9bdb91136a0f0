package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized reports a 401 from an auth-gated endpoint. Callers are
// expected to drop the session to anonymous and send the user to login.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSuperseded marks a response that was discarded because a newer request
// for the same resource started while it was in flight.
var ErrSuperseded = errors.New("superseded by a newer request")

// StatusError is a non-2xx response other than a 401 on an auth-gated call.
// Transport-level failures are returned as wrapped errors from net/http and
// carry no StatusError.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}
