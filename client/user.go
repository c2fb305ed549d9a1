package client

import (
	"context"
	"github.com/viant/rag/schema"
	"net/http"
)

func (c *Client) Me(ctx context.Context, options ...RequestOption) (*schema.User, error) {
	return send[schema.User](ctx, c, &request{method: http.MethodGet, path: schema.PathUserMe}, options...)
}

func (c *Client) UpdateMe(ctx context.Context, params *schema.UpdateUserRequest, options ...RequestOption) error {
	req, err := jsonRequest(http.MethodPut, schema.PathUserMe, params)
	if err != nil {
		return err
	}
	return exec(ctx, c, req, options...)
}

func (c *Client) ChangePassword(ctx context.Context, params *schema.ChangePasswordRequest, options ...RequestOption) error {
	req, err := jsonRequest(http.MethodPatch, schema.PathUserPassword, params)
	if err != nil {
		return err
	}
	return exec(ctx, c, req, options...)
}

// DeleteAccount removes the account and ends the local session.
func (c *Client) DeleteAccount(ctx context.Context, options ...RequestOption) error {
	if err := exec(ctx, c, &request{method: http.MethodDelete, path: schema.PathUserMe}, options...); err != nil {
		return err
	}
	return c.endSession(ctx)
}
