package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/rag/client/auth/store"
	"go.uber.org/zap"
	"net/http"
)

type Option func(*RoundTripper)

// WithStore sets store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithRefreshURL refreshes against the given endpoint
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithRefresher sets a custom refresher, overriding WithRefreshURL
func WithRefresher(refresher Refresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithInvalidationHandler registers a session invalidation observer
func WithInvalidationHandler(handler InvalidationHandler) Option {
	return func(t *RoundTripper) {
		t.handlers = append(t.handlers, handler)
	}
}

// WithRegisterer registers session metrics
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(t *RoundTripper) {
		t.registerer = registerer
	}
}
