package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructorsSetCodeAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		code   string
		status int
	}{
		{"unauthorized", NewUnauthorizedError("Unauthorized"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("nope"), "FORBIDDEN", http.StatusForbidden},
		{"bad request", NewBadRequestError("bad", nil, nil), "BAD_REQUEST", http.StatusBadRequest},
		{"not found", NewNotFoundError("missing", nil), "NOT_FOUND", http.StatusNotFound},
		{"conflict", NewConflictError("exists", nil, nil), "CONFLICT", http.StatusConflict},
		{"rate limited", NewTooManyRequestsError("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"internal", NewInternalServerError(), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestCustomCodeOverridesDefault(t *testing.T) {
	code := "DECK_ALREADY_EXISTS"
	err := NewConflictError("A deck with this identifier already exists", &code, nil)

	assert.Equal(t, "DECK_ALREADY_EXISTS", err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	details := map[string]any{
		"name": []map[string]string{{"constraint": "required", "message": "name is required"}},
	}

	err := NewValidationError(details)

	assert.Equal(t, CodeValidationError, err.Code)
	assert.Equal(t, "Validation failed", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, details, err.Details)
}

func TestInternalServerErrorHidesCause(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Message)
}

func TestWithMessageAndWithDetailsCopy(t *testing.T) {
	original := NewNotFoundError("missing", nil)

	changed := original.WithMessage("Deck not found")
	assert.Equal(t, "missing", original.Message, "original must not be mutated")
	assert.Equal(t, "Deck not found", changed.Message)
	assert.Equal(t, original.Code, changed.Code)

	withDetails := original.WithDetails(map[string]any{"id": "x"})
	assert.Nil(t, original.Details)
	require.NotNil(t, withDetails.Details)
}

func TestErrorsAsAndIs(t *testing.T) {
	wrapped := fmt.Errorf("calling service: %w", NewUnauthorizedError("Unauthorized"))

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)

	assert.True(t, errors.Is(wrapped, &HTTPError{}), "Is matches on type, not value")
}
