package errs

import (
	"net/http"
)

// CodeValidationError is the stable code for request validation failures.
// Clients render Details to show every violated field in one round trip.
const CodeValidationError = "VALIDATION_ERROR"

// CodeRateLimited is the stable code returned when a caller exceeds a
// per-user request quota.
const CodeRateLimited = "RATE_LIMITED"

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Optional extras:
//   - code: custom code string (nil defaults to "BAD_REQUEST")
//   - details: structured context, e.g. which field failed which constraint
func NewBadRequestError(message string, code *string, details map[string]any) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Details: details,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError with an optional
// custom code.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewConflictError creates a 409 Conflict HTTPError with an optional custom
// code, typically produced from database unique violations.
func NewConflictError(message string, code *string, details map[string]any) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusConflict))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusConflict,
		Details: details,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError with the RATE_LIMITED code.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
// Internal failures are logged server-side; clients only see the code.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewValidationError creates the standard 400 error for request validation
// failures. Details maps each offending field path to its list of violated
// constraints, so a client can surface every problem at once.
func NewValidationError(details map[string]any) *HTTPError {
	return &HTTPError{
		Code:    CodeValidationError,
		Message: "Validation failed",
		Status:  http.StatusBadRequest,
		Details: details,
	}
}
