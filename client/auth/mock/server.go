package mock

import (
	"net/http/httptest"
)

// HTTPTestServer runs a Service on a local httptest server
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
	// URL is the API base URL, including BasePath
	URL string
}

// NewHTTPTestServer starts a mock API server
func NewHTTPTestServer(opts ...Option) (*HTTPTestServer, error) {
	service, err := NewService(opts...)
	if err != nil {
		return nil, err
	}
	server := httptest.NewServer(service.Handler())
	return &HTTPTestServer{Service: service, Server: server, URL: server.URL + BasePath}, nil
}

// Close shuts down the server
func (s *HTTPTestServer) Close() {
	s.Server.Close()
}
