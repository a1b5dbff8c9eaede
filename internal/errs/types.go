package errs

import "strings"

// HTTPError is the application error type for API responses.
//
// Fields:
//   - Code: machine-readable error token (e.g. "VALIDATION_ERROR"). Codes are
//     stable across releases; clients may branch on them.
//   - Message: human-readable description. Not guaranteed stable, safe for
//     developers and operators but not asserted end-user ready.
//   - Status: the HTTP status the response should carry.
//   - Details: optional structured context. Always a string-keyed map (never
//     a bare scalar) so new keys can be added without breaking readers. For
//     validation failures it maps field paths to their violations.
//
// It satisfies the error interface so it can travel through normal Go error
// returns until the global error handler serializes it.
type HTTPError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It matches on type only,
// not on code or status, so errors.Is(err, &HTTPError{}) answers "is this an
// application-level error" without comparing fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced. The
// original is not mutated, so shared error templates stay safe.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Details: e.Details,
	}
}

// WithDetails returns a copy of the error with Details replaced.
func (e *HTTPError) WithDetails(details map[string]any) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Details: details,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES form.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to derive stable machine-readable codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
