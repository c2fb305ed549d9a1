package mock

import (
	"errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/rag/schema"
	"net/http"
	"strings"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		status = statusErr.status
	}
	writeJSON(w, status, &schema.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: err.Error(),
		Path:    r.URL.Path,
	})
}

func decode(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return newStatusError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
