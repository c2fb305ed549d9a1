package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/rag/client/auth/store"
	"github.com/viant/rag/client/auth/transport"
	"github.com/viant/rag/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"io"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestIDHeader = "X-Request-Id"

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *transport.RoundTripper
	store      store.Store
	fs         afs.Service
	logger     *zap.Logger
	transport  http.RoundTripper
	timeout    time.Duration
	handlers   []transport.InvalidationHandler
	registerer prometheus.Registerer
}

type request struct {
	method      string
	path        string
	query       neturl.Values
	body        io.Reader
	contentType string
	anonymous   bool
	authorize   bool
	requestID   string
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL was empty")
	}
	ret := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		fs:        afs.New(),
		logger:    zap.NewNop(),
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = store.NewMemoryStore()
	}
	sessionOptions := []transport.Option{
		transport.WithStore(ret.store),
		transport.WithTransport(ret.transport),
		transport.WithRefreshURL(url.Join(ret.baseURL, schema.PathRefreshToken)),
		transport.WithLogger(ret.logger.Named("session")),
		transport.WithRegisterer(ret.registerer),
	}
	for _, handler := range ret.handlers {
		sessionOptions = append(sessionOptions, transport.WithInvalidationHandler(handler))
	}
	var err error
	if ret.session, err = transport.New(sessionOptions...); err != nil {
		return nil, fmt.Errorf("failed to create session transport: %w", err)
	}
	ret.httpClient = &http.Client{Transport: ret.session, Timeout: ret.timeout}
	return ret, nil
}

// Session returns the stored credential pair or ErrUnauthenticated.
func (c *Client) Session() (*oauth2.Token, error) {
	if pair := store.Pair(c.store); pair != nil {
		return pair, nil
	}
	return nil, transport.ErrUnauthenticated
}

// Authenticated reports whether an access token is stored.
func (c *Client) Authenticated() bool {
	return c.store.AccessToken() != ""
}

// Transport exposes the session transport, e.g. to register invalidation handlers later.
func (c *Client) Transport() *transport.RoundTripper {
	return c.session
}

func (c *Client) do(ctx context.Context, req *request, options ...RequestOption) (*http.Response, error) {
	for _, opt := range options {
		opt(req)
	}
	URL := url.Join(c.baseURL, req.path)
	if len(req.query) > 0 {
		URL += "?" + req.query.Encode()
	}
	if req.anonymous {
		ctx = transport.Anonymous(ctx)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, req.method, URL, req.body)
	if err != nil {
		return nil, err
	}
	if req.contentType != "" {
		httpRequest.Header.Set("Content-Type", req.contentType)
	}
	httpRequest.Header.Set("Accept", "application/json")
	if req.requestID == "" {
		req.requestID = uuid.NewString()
	}
	httpRequest.Header.Set(requestIDHeader, req.requestID)
	if req.authorize {
		c.session.Authorize(httpRequest)
	}
	resp, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := newError(resp, req.requestID)
		c.logger.Debug("request failed",
			zap.String("method", apiErr.Method),
			zap.String("url", apiErr.URL),
			zap.Int("status", apiErr.StatusCode),
			zap.String("requestId", apiErr.RequestID))
		return nil, apiErr
	}
	return resp, nil
}

func send[R any](ctx context.Context, client *Client, req *request, options ...RequestOption) (*R, error) {
	resp, err := client.do(ctx, req, options...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var result R
	if resp.StatusCode == http.StatusNoContent {
		return &result, nil
	}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode %s %s response: %w", req.method, req.path, err)
	}
	return &result, nil
}

func exec(ctx context.Context, client *Client, req *request, options ...RequestOption) error {
	resp, err := client.do(ctx, req, options...)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func jsonRequest(method, path string, payload interface{}) (*request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
	}
	return &request{method: method, path: path, body: bytes.NewReader(data), contentType: "application/json"}, nil
}

// multipartRequest encodes content as the `file` part.
func multipartRequest(path, fileName string, content io.Reader) (*request, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", fileName, err)
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}
	return &request{method: http.MethodPost, path: path, body: buffer, contentType: writer.FormDataContentType()}, nil
}
