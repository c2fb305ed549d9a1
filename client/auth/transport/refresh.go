package transport

import (
	"context"
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
	"net/http"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Refresher exchanges a refresh token for a new credential pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, refreshToken string) (*oauth2.Token, error)

func (f RefresherFunc) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return f(ctx, refreshToken)
}

// EndpointRefresher posts to the refresh endpoint presenting the refresh
// token as the bearer credential.
type EndpointRefresher struct {
	URL       string
	Transport http.RoundTripper
}

func (e *EndpointRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, http.NoBody)
	if err != nil {
		return nil, &RefreshError{Err: err}
	}
	(&oauth2.Token{AccessToken: refreshToken}).SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	rt := e.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		return nil, &RefreshError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Err: fmt.Errorf("refresh rejected: %v", readSnippet(resp))}
	}
	token := &oauth2.Token{}
	if err = json.NewDecoder(resp.Body).Decode(token); err != nil {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid refresh response: %w", err)}
	}
	if token.AccessToken == "" {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Err: errors.New("refresh response missing access_token")}
	}
	return token, nil
}
