package transport

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/rag/client/auth/store"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	"net/http"
	"sync"
)

type RoundTripper struct {
	store      store.Store
	refresher  Refresher
	refreshURL string
	transport  http.RoundTripper
	logger     *zap.Logger
	registerer prometheus.Registerer
	metrics    *metrics
	group      singleflight.Group
	handlers   []InvalidationHandler
	mux        sync.RWMutex

	sessionMux sync.Mutex
	// ended is set once the session holding endedFor was reported invalid
	ended    bool
	endedFor string
	// failed remembers the last refresh failure for requests still carrying its access token
	failed *failure
}

type failure struct {
	accessToken string
	err         error
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refresher == nil {
		if ret.refreshURL == "" {
			return nil, errors.New("refresh URL was empty")
		}
		ret.refresher = &EndpointRefresher{URL: ret.refreshURL, Transport: ret.transport}
	}
	ret.metrics = newMetrics(ret.registerer)
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

// OnInvalidation registers an additional invalidation handler.
func (r *RoundTripper) OnInvalidation(handler InvalidationHandler) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.handlers = append(r.handlers, handler)
}

// Authorize sets the bearer credential from the store on req, replacing any
// previous Authorization header. It returns the token used, or "" when the
// session is anonymous and req is left untouched.
func (r *RoundTripper) Authorize(req *http.Request) string {
	accessToken := r.store.AccessToken()
	if accessToken != "" {
		(&oauth2.Token{AccessToken: accessToken}).SetAuthHeader(req)
		r.resume(accessToken)
	}
	return accessToken
}

// resume starts a new session once a request carries a token that was not invalidated.
func (r *RoundTripper) resume(accessToken string) {
	r.sessionMux.Lock()
	defer r.sessionMux.Unlock()
	if accessToken != r.endedFor {
		r.ended = false
	}
}

// failedWith returns the refresh error recorded for accessToken, if any.
func (r *RoundTripper) failedWith(accessToken string) error {
	r.sessionMux.Lock()
	defer r.sessionMux.Unlock()
	if accessToken == "" || r.failed == nil || r.failed.accessToken != accessToken {
		return nil
	}
	return r.failed.err
}

// end marks the session holding accessToken invalidated and reports whether
// it already was. A cleared store ("") belongs to the ended session.
func (r *RoundTripper) end(accessToken string) bool {
	r.sessionMux.Lock()
	defer r.sessionMux.Unlock()
	if r.ended && (accessToken == "" || accessToken == r.endedFor) {
		return true
	}
	r.ended, r.endedFor = true, accessToken
	return false
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAnonymous(req.Context()) {
		return r.transport.RoundTrip(req)
	}
	anAttempt, err := newAttempt(req)
	if err != nil {
		return nil, err
	}
	return r.send(anAttempt, "")
}

// send issues the attempt with accessToken, or the stored token when empty.
func (r *RoundTripper) send(anAttempt *attempt, accessToken string) (*http.Response, error) {
	outbound := anAttempt.outbound()
	if accessToken == "" {
		accessToken = r.Authorize(outbound)
	} else {
		(&oauth2.Token{AccessToken: accessToken}).SetAuthHeader(outbound)
	}
	resp, err := r.transport.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || anAttempt.retried {
		return resp, nil
	}
	anAttempt.retried = true
	ctx := anAttempt.request.Context()

	// read before the access token: a pair stored in between must not pair
	// a stale access token with a rotated refresh token
	refreshToken := r.store.RefreshToken()
	// another request may have rotated the pair while this one was in flight
	if current := r.store.AccessToken(); current != "" && current != accessToken {
		discard(resp)
		r.metrics.replays.Inc()
		return r.send(anAttempt, current)
	}
	if refreshToken == "" {
		// the shared refresh for this token already failed and was reported
		if err = r.failedWith(accessToken); err != nil {
			discard(resp)
			return nil, err
		}
		if r.end(accessToken) {
			return resp, nil
		}
		r.logger.Info("session rejected without refresh token", zap.String("url", outbound.URL.Redacted()))
		r.Invalidate(ctx, &Invalidation{Reason: ReasonMissingRefreshToken, Err: ErrRefreshExhausted})
		return resp, nil
	}
	discard(resp)
	token, err := r.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	r.metrics.replays.Inc()
	return r.send(anAttempt, token.AccessToken)
}

// Refresh exchanges refreshToken for a new pair and persists it. Concurrent
// calls presenting the same refresh token share one exchange; each caller
// still returns early when its own context is done.
func (r *RoundTripper) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ch := r.group.DoChan(refreshToken, func() (interface{}, error) {
		return r.exchange(context.WithoutCancel(ctx), refreshToken)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*oauth2.Token), nil
	}
}

func (r *RoundTripper) exchange(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	// a late caller may present a refresh token that was rotated by the previous exchange
	if current := r.store.RefreshToken(); current != "" && current != refreshToken {
		if accessToken := r.store.AccessToken(); accessToken != "" {
			return &oauth2.Token{AccessToken: accessToken, RefreshToken: current}, nil
		}
	}
	token, err := r.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		r.metrics.refreshes.WithLabelValues("failure").Inc()
		r.logger.Warn("session refresh failed", zap.Error(err))
		stale := r.store.AccessToken()
		r.sessionMux.Lock()
		r.failed = &failure{accessToken: stale, err: err}
		r.ended, r.endedFor = true, stale
		r.sessionMux.Unlock()
		if clearErr := r.store.Clear(); clearErr != nil {
			r.logger.Error("failed to clear session", zap.Error(clearErr))
		}
		r.Invalidate(ctx, &Invalidation{Reason: ReasonRefreshFailed, Err: err})
		return nil, err
	}
	if token.RefreshToken == "" {
		// server did not rotate; keep presenting the current refresh token
		token.RefreshToken = refreshToken
	}
	if err = r.store.SetPair(token); err != nil {
		r.metrics.refreshes.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to store refreshed session: %w", err)
	}
	r.metrics.refreshes.WithLabelValues("success").Inc()
	r.logger.Debug("session refreshed")
	return token, nil
}

// Invalidate notifies handlers that the session is no longer usable.
func (r *RoundTripper) Invalidate(ctx context.Context, invalidation *Invalidation) {
	r.end(r.store.AccessToken())
	r.metrics.invalidations.WithLabelValues(string(invalidation.Reason)).Inc()
	r.mux.RLock()
	handlers := make([]InvalidationHandler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mux.RUnlock()
	for _, handler := range handlers {
		handler(ctx, invalidation)
	}
}
