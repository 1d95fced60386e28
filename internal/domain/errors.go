package domain

import (
	"errors"
	"fmt"
)

// ErrReconciliationUnavailable marks a reload that ran without the balances
// feed. It is logged, never returned from a reload.
var ErrReconciliationUnavailable = errors.New("reconciliation data unavailable")

// FetchFailure is a network or non-2xx failure talking to the backend.
type FetchFailure struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchFailure) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// ValidationFailure is user input rejected before any network call.
type ValidationFailure struct {
	Field  string
	Reason string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
