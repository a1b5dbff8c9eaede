// Package response builds the uniform JSON envelope used by every API
// endpoint.
//
// The contract is deliberately small:
//   - success bodies carry the handler's data verbatim at the top level,
//   - error bodies nest everything under a single "error" key.
//
// Consumers never branch on endpoint identity to parse a response; the
// presence of the "error" key and the HTTP status are the only
// discriminators. The builders here are pure functions: they construct an
// Envelope value and nothing else. Writing bytes to the wire is the
// transport's job (see Write).
package response

import (
	"net/http"

	"github.com/deckwise/backend/internal/errs"
	"github.com/labstack/echo/v4"
)

// Envelope is the wire-level result of a request: the HTTP status to send
// and the body to serialize as JSON.
type Envelope struct {
	Status int
	Body   any
}

// ErrorBody is the bit-exact error body shape:
//
//	{ "error": { "code": "...", "message": "...", "details": { ... } } }
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine code, human message, and optional
// structured details of an error response. Details is always a string-keyed
// map, never a bare scalar, so readers can be extended without breaking.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Success builds a success envelope with the default 200 status. The data
// value is serialized as-is at the top level; no wrapper key is added.
func Success(data any) Envelope {
	return SuccessWithStatus(data, http.StatusOK)
}

// SuccessWithStatus builds a success envelope with a caller-chosen status.
//
// The status must be a valid HTTP status (100..599). Passing anything else
// is a programmer error and panics; the builder does not judge whether the
// status is domain-appropriate.
func SuccessWithStatus(data any, status int) Envelope {
	mustValidStatus(status)
	return Envelope{
		Status: status,
		Body:   data,
	}
}

// Error builds an error envelope without details.
func Error(code, message string, status int) Envelope {
	return ErrorWithDetails(code, message, status, nil)
}

// ErrorWithDetails builds an error envelope carrying structured details.
// A nil details map is omitted from the serialized body entirely.
func ErrorWithDetails(code, message string, status int, details map[string]any) Envelope {
	mustValidStatus(status)
	return Envelope{
		Status: status,
		Body: ErrorBody{
			Error: ErrorDetail{
				Code:    code,
				Message: message,
				Details: details,
			},
		},
	}
}

// FromHTTPError converts an application *errs.HTTPError into an error
// envelope, preserving code, message, status, and details.
func FromHTTPError(e *errs.HTTPError) Envelope {
	return ErrorWithDetails(e.Code, e.Message, e.Status, e.Details)
}

// Write serializes the envelope onto the HTTP response. This is the single
// point where the envelope crosses the transport boundary; echo's JSON
// writer sets Content-Type: application/json.
func Write(c echo.Context, env Envelope) error {
	return c.JSON(env.Status, env.Body)
}

// mustValidStatus panics when status is outside the valid HTTP range.
// Like a schema misconfiguration in the validator, a bogus status is a
// programmer error caught by tests, not a runtime-recoverable condition.
func mustValidStatus(status int) {
	if status < 100 || status > 599 {
		panic("response: HTTP status out of range")
	}
}
