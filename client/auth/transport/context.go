package transport

import (
	"context"
)

type (
	contextKey string
)

const (
	contextAnonymousKey contextKey = "anonymous"
)

// Anonymous marks calls that must bypass session handling, such as login and
// registration: no bearer credential is attached and a 401 is not refreshed.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextAnonymousKey, true)
}

func isAnonymous(ctx context.Context) bool {
	if v := ctx.Value(contextAnonymousKey); v != nil {
		anonymous, _ := v.(bool)
		return anonymous
	}
	return false
}
