package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

const maxDrain = 4 << 10

// attempt is an outbound call and its single-shot retry flag.
type attempt struct {
	request *http.Request
	body    []byte
	retried bool
}

// newAttempt buffers the request body so the call can be replayed verbatim.
func newAttempt(req *http.Request) (*attempt, error) {
	ret := &attempt{request: req}
	if req.Body == nil || req.Body == http.NoBody {
		return ret, nil
	}
	defer req.Body.Close()
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer request body: %w", err)
	}
	ret.body = data
	return ret, nil
}

// outbound returns a fresh copy of the request; the caller's request is never mutated.
func (a *attempt) outbound() *http.Request {
	cloned := a.request.Clone(a.request.Context())
	if a.body != nil {
		body := a.body
		cloned.Body = io.NopCloser(bytes.NewReader(body))
		cloned.ContentLength = int64(len(body))
		cloned.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	return cloned
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	_ = resp.Body.Close()
}

func readSnippet(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxDrain))
	return string(bytes.TrimSpace(data))
}
