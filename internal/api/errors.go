package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a request exceeds the fixed client
	// timeout. It is deliberately distinct from other network failures so
	// the UI can tell "slow backend" from "no backend".
	ErrTimeout = errors.New("request timed out, please try again")

	// ErrUnavailable wraps connection-level failures (refused, DNS, reset).
	// The CLI mode watcher matches on it to flip into offline mode.
	ErrUnavailable = errors.New("service unavailable")
)

// StatusError is the failure produced for a non-2xx HTTP response. Message
// carries the server-supplied envelope error when present, else a generic
// status-coded string.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func genericStatusMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}
