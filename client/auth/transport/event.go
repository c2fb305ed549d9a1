package transport

import (
	"context"
)

// Reason explains why a session was invalidated.
type Reason string

const (
	ReasonMissingRefreshToken Reason = "missing_refresh_token"
	ReasonRefreshFailed       Reason = "refresh_failed"
	ReasonLogout              Reason = "logout"
)

// Invalidation is emitted when the session moves back to anonymous.
type Invalidation struct {
	Reason Reason
	Err    error
}

// InvalidationHandler observes session invalidation, typically to send the user to login.
type InvalidationHandler func(ctx context.Context, invalidation *Invalidation)
