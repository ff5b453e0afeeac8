// Package httputil provides JSON response helpers shared by all HTTP handlers.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "watchlist/pkg/domain-errors"
)

// Validatable is implemented by request DTOs that validate and parse
// themselves after JSON decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteError translates a domain error into an HTTP error response.
// Internal errors omit the description so infrastructure details never
// reach clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		body.ErrorDescription = dErrors.MessageOf(err)
	}

	WriteJSON(w, statusFor(code), body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the request body into dst and runs its validation.
// On failure it writes the error response and returns false; handlers should
// simply return.
func DecodeAndPrepare(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst Validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if logger != nil {
			logger.DebugContext(r.Context(), "request body decode failed", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return false
	}
	if err := dst.Validate(); err != nil {
		WriteError(w, err)
		return false
	}
	return true
}
