// Package httputil centralizes JSON response writing so handlers stay
// focused on request parsing and service calls.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"fundsight/pkg/apperrors"
)

// errorBody is the wire shape for all error responses.
type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded error to an HTTP status and JSON body. Internal
// errors omit the description so backend detail never leaks to callers;
// caller-facing codes include it.
func WriteError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	body := errorBody{Error: string(code)}

	var coded *apperrors.Error
	if errors.As(err, &coded) {
		body.Description = coded.Description
	}

	switch code {
	case apperrors.CodeBadRequest:
		WriteJSON(w, http.StatusBadRequest, body)
	case apperrors.CodeNotFound:
		WriteJSON(w, http.StatusNotFound, body)
	case apperrors.CodeUnavailable:
		body.Description = "temporarily unavailable, retry later"
		WriteJSON(w, http.StatusServiceUnavailable, body)
	default:
		body.Description = ""
		WriteJSON(w, http.StatusInternalServerError, body)
	}
}
