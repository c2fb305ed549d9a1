package client

import (
	"errors"
	"fmt"
	"github.com/viant/rag/client/auth/transport"
	"github.com/viant/rag/schema"
	"io"
	"net/http"
	"strings"
)

// Error is returned for non-2xx responses the session transport did not resolve.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	RequestID  string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func newError(resp *http.Response, requestID string) *Error {
	ret := &Error{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Redacted(),
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	errorResponse := &schema.ErrorResponse{}
	if err := json.Unmarshal(data, errorResponse); err == nil && errorResponse.Text() != "" {
		ret.Message = errorResponse.Text()
	} else {
		ret.Message = strings.TrimSpace(string(data))
	}
	return ret
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err means the caller has to log in again.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized ||
		errors.Is(err, transport.ErrRefreshExhausted) ||
		errors.Is(err, transport.ErrUnauthenticated)
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
