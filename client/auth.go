package client

import (
	"context"
	"github.com/viant/rag/client/auth/transport"
	"github.com/viant/rag/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"net/http"
)

// Register creates an account and starts a session with the issued pair.
func (c *Client) Register(ctx context.Context, params *schema.RegisterRequest, options ...RequestOption) (*oauth2.Token, error) {
	req, err := jsonRequest(http.MethodPost, schema.PathRegister, params)
	if err != nil {
		return nil, err
	}
	req.anonymous = true
	resp, err := send[schema.AuthenticationResponse](ctx, c, req, options...)
	if err != nil {
		return nil, err
	}
	return c.login(resp)
}

// Authenticate logs in and stores the issued pair.
func (c *Client) Authenticate(ctx context.Context, params *schema.AuthenticationRequest, options ...RequestOption) (*oauth2.Token, error) {
	req, err := jsonRequest(http.MethodPost, schema.PathAuthenticate, params)
	if err != nil {
		return nil, err
	}
	req.anonymous = true
	resp, err := send[schema.AuthenticationResponse](ctx, c, req, options...)
	if err != nil {
		return nil, err
	}
	return c.login(resp)
}

// Refresh rotates the stored pair ahead of expiry. On failure the session is
// cleared and invalidation handlers are notified.
func (c *Client) Refresh(ctx context.Context) (*oauth2.Token, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return nil, transport.ErrUnauthenticated
	}
	return c.session.Refresh(ctx, refreshToken)
}

// Logout tells the service to revoke the session, then clears the local pair
// whatever the outcome of that call.
func (c *Client) Logout(ctx context.Context, options ...RequestOption) error {
	if c.Authenticated() {
		req := &request{method: http.MethodPost, path: schema.PathLogout, anonymous: true, authorize: true}
		if err := exec(ctx, c, req, options...); err != nil {
			c.logger.Info("logout failed on server, clearing local session anyway", zap.Error(err))
		}
	}
	return c.endSession(ctx)
}

func (c *Client) endSession(ctx context.Context) error {
	err := c.store.Clear()
	c.session.Invalidate(ctx, &transport.Invalidation{Reason: transport.ReasonLogout})
	return err
}

func (c *Client) login(resp *schema.AuthenticationResponse) (*oauth2.Token, error) {
	pair := &oauth2.Token{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, TokenType: "Bearer"}
	if err := c.store.SetPair(pair); err != nil {
		return nil, err
	}
	return pair, nil
}
