package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/rag/client/auth/store"
	"github.com/viant/rag/client/auth/transport"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// Option represents option
type Option func(c *Client)

// WithStore sets the session store
func WithStore(store store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPTransport sets the transport wrapped by the session transport
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithTimeout sets the overall request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithInvalidationHandler observes session invalidation (refresh exhausted, logout)
func WithInvalidationHandler(handler transport.InvalidationHandler) Option {
	return func(c *Client) {
		c.handlers = append(c.handlers, handler)
	}
}

// WithRegisterer registers session metrics
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = registerer
	}
}

// RequestOption customizes a single call
type RequestOption func(r *request)

// WithRequestID sets the X-Request-Id header instead of a generated one
func WithRequestID(id string) RequestOption {
	return func(r *request) {
		r.requestID = id
	}
}
