package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated reports a call that needs a session while none is stored.
	ErrUnauthenticated = errors.New("no active session")
	// ErrRefreshExhausted reports a session that cannot be recovered by refreshing.
	ErrRefreshExhausted = errors.New("session refresh exhausted")
)

// RefreshError describes a failed refresh call. StatusCode is zero when the
// call never reached the server.
type RefreshError struct {
	StatusCode int
	Err        error
}

func (e *RefreshError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("refresh failed: %v", e.Err)
	}
	return fmt.Sprintf("refresh failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Is matches ErrRefreshExhausted.
func (e *RefreshError) Is(target error) bool {
	return target == ErrRefreshExhausted
}
