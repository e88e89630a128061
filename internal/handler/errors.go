package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
// Code is a stable machine-readable reason; Error is for people.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// reasonCodes maps each rejection sentinel to its wire code.
// Checked in order; the generic ErrValidation entry must stay last.
var reasonCodes = []struct {
	err  error
	code string
}{
	{domain.ErrMalformedInstant, "malformed_instant"},
	{domain.ErrEndNotAfterStart, "end_not_after_start"},
	{domain.ErrNoProfileSelected, "no_profile_selected"},
	{domain.ErrEmptyName, "empty_name"},
	{domain.ErrUnknownTimezone, "unknown_timezone"},
	{domain.ErrValidation, "validation_error"},
}

// reasonCode returns the wire code for a validation error.
func reasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "validation_error"
}

// unwrapMessage extracts the human-readable part from a wrapped service error.
// e.g. "service.EventService.Create: startDate: validation error: malformed date/time: \"x\""
// → "startDate: malformed date/time: \"x\""
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "service.") {
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			msg = rest
		}
	}
	return strings.ReplaceAll(msg, domain.ErrValidation.Error()+": ", "")
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeBadRequest reports a request rejected before reaching the service layer
// (e.g. malformed JSON or query parameters).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// writeServiceError maps a service error to a status code and body.
// The caller supplies the not-found message because the handler is the layer
// that knows what was being looked up. Unexpected errors are logged and
// reported as 500 without leaking their text.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFound, Code: "not_found"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: unwrapMessage(err), Code: reasonCode(err)})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal_error"})
	}
}

// decodeJSON decodes the request body into dest, reporting a 400 on failure.
// Returns false when the caller should stop handling the request.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeBadRequest(w, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: "bad_request"})
			return false
		}
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
