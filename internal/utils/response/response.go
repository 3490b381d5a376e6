// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/validate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a list, an id…).
// Error responses always look like:
//
//	{ "status": "error", "error": "firstName is required" }
//
// Validation failures additionally carry one entry per failing field so a
// form can show each message next to its input.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string                `json:"status"`
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the field errors reported by the validate
// package into a Response.
//
// Example output:
//
//	{
//	  "status": "error",
//	  "error": "firstName is required, gpa must be a number between 0 and 4",
//	  "fields": [
//	    { "field": "firstName", "message": "firstName is required" },
//	    { "field": "gpa", "message": "gpa must be a number between 0 and 4" }
//	  ]
//	}
func ValidationError(errs validate.Errors) Response {
	return Response{
		Status: StatusError,
		Error:  errs.Error(),
		Fields: errs,
	}
}
