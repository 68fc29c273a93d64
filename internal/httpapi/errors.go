package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"paramd/internal/params"
	"paramd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeError maps err to a status code and writes it.
// Validation failures carry every issue in the detail list.
func writeError(w http.ResponseWriter, err error) int {
	if ve, ok := params.AsValidation(err); ok {
		status := ve.StatusCode()
		writeJSON(w, status, types.ErrorResponse{Error: "validation failed", Code: status, Detail: ve.Issues})
		return status
	}
	var he HTTPError
	if errors.As(err, &he) {
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusBody lets a handler choose a non-default success status.
type statusBody struct {
	code int
	body any
}

func (s statusBody) StatusCode() int { return s.code }

func (s statusBody) MarshalJSON() ([]byte, error) { return json.Marshal(s.body) }

// WithStatus wraps a handler result so it is written with status code.
func WithStatus(code int, body any) any { return statusBody{code: code, body: body} }

func successStatus(resp any) int {
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		return sc.StatusCode()
	}
	return http.StatusOK
}
