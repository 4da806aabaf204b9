// Package httpapi bundles the HTTP endpoints of the three applications.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/webtriad/webtriad/internal/errors"
)

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	message := err.Error()
	if serviceErr := errors.GetServiceError(err); serviceErr != nil {
		message = serviceErr.Message
	}
	writeJSON(w, errors.HTTPStatus(err), map[string]string{"error": message})
}
