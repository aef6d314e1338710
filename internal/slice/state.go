// Package slice holds the asynchronous state container used for every server
// resource the client displays.
package slice

import (
	"net/http"

	"github.com/jobportal/jobportal-client/internal/platform/httpx"
)

// Status is the lifecycle position of a slice.
type Status int

const (
	Idle Status = iota
	Pending
	Fulfilled
	Rejected
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Terminal reports whether s ends a fetch.
func (s Status) Terminal() bool {
	return s == Fulfilled || s == Rejected
}

// ErrorInfo is the normalized failure stored by a rejected slice.
type ErrorInfo struct {
	Message string `json:"message"`
	// Status is the HTTP status of a server-reported failure, 0 otherwise.
	Status int `json:"status,omitempty"`
}

// Transient reports whether the failure is worth a retry notice: network
// problems and server-side 5xx errors.
func (e *ErrorInfo) Transient() bool {
	return e != nil && (e.Status == 0 || e.Status >= http.StatusInternalServerError)
}

func normalizeError(err error) *ErrorInfo {
	return &ErrorInfo{Message: err.Error(), Status: httpx.StatusOf(err)}
}

// State is an immutable snapshot of a slice. Data is nil until the first
// successful fetch.
type State[T any] struct {
	Status Status
	Data   *T
	Error  *ErrorInfo
}

// Loading reports whether a fetch is in flight.
func (s State[T]) Loading() bool {
	return s.Status == Pending
}

// Value returns the data or the zero value when none was fetched yet.
func (s State[T]) Value() T {
	if s.Data == nil {
		var zero T
		return zero
	}
	return *s.Data
}
