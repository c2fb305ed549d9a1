package schema

// ErrorResponse is the error body returned by the service. Only some
// endpoints populate it; the client falls back to the raw body otherwise.
type ErrorResponse struct {
	Status  int    `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Text returns the most specific message available.
func (e *ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
