package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode marks a response body the client could not understand.
	ErrDecode = errors.New("invalid repository response")
	// ErrNoMasterRef is returned when the entry lists no master ref.
	ErrNoMasterRef = errors.New("repository entry has no master ref")
)

// Error is a failed repository call. A repository failure is never reported
// as a missing document: callers must answer it distinctly (bad gateway).
type Error struct {
	Op         string // entry, search
	StatusCode int    // 0 when no HTTP response was received
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("repository %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("repository %s: status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether retrying the call may succeed.
func (e *Error) Temporary() bool {
	if e.StatusCode != 0 {
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
	}
	return !errors.Is(e.Err, ErrDecode) && !errors.Is(e.Err, context.Canceled)
}

func isTransient(err error) bool {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Temporary()
	}
	return false
}
