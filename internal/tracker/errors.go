package tracker

import (
	"errors"
	"fmt"
)

// ErrTrackerQuery is wrapped by every failure talking to the tracker.
var ErrTrackerQuery = errors.New("tracker query failed")

// QueryError is a non-2xx HTTP response or a GraphQL error payload.
type QueryError struct {
	StatusCode int
	Messages   []string
}

func (e *QueryError) Error() string {
	msg := "unknown error"
	if len(e.Messages) > 0 {
		msg = e.Messages[0]
		if n := len(e.Messages) - 1; n > 0 {
			msg = fmt.Sprintf("%s (and %d more)", msg, n)
		}
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("tracker returned %d: %s", e.StatusCode, msg)
	}
	return "tracker query: " + msg
}

func (e *QueryError) Unwrap() error { return ErrTrackerQuery }

// Temporary reports whether retrying the same query may succeed.
func (e *QueryError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
