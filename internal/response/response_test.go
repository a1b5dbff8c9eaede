package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckwise/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessDefaultsTo200(t *testing.T) {
	env := Success(map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, map[string]string{"id": "abc"}, env.Body)
}

func TestSuccessWithStatusCarriesDataVerbatim(t *testing.T) {
	data := []int{1, 2, 3}
	env := SuccessWithStatus(data, http.StatusAccepted)

	assert.Equal(t, http.StatusAccepted, env.Status)
	// No wrapper key; the body IS the data.
	assert.Equal(t, data, env.Body)
}

func TestErrorBodyShape(t *testing.T) {
	env := Error("NOT_FOUND", "Deck not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, env.Status)

	raw, err := json.Marshal(env.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": {"code": "NOT_FOUND", "message": "Deck not found"}}`, string(raw))
}

func TestErrorWithDetailsSerializesDetails(t *testing.T) {
	env := ErrorWithDetails("VALIDATION_ERROR", "Validation failed", http.StatusBadRequest, map[string]any{
		"source_text": []map[string]string{
			{"constraint": "max_length", "message": "source_text must not exceed 5000 characters"},
		},
	})

	raw, err := json.Marshal(env.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "Validation failed",
			"details": {
				"source_text": [
					{"constraint": "max_length", "message": "source_text must not exceed 5000 characters"}
				]
			}
		}
	}`, string(raw))
}

func TestErrorOmitsNilDetails(t *testing.T) {
	env := ErrorWithDetails("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized, nil)

	raw, err := json.Marshal(env.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "details")
}

func TestFromHTTPError(t *testing.T) {
	httpErr := errs.NewValidationError(map[string]any{"name": "bad"})

	env := FromHTTPError(httpErr)

	assert.Equal(t, httpErr.Status, env.Status)
	body, ok := env.Body.(ErrorBody)
	require.True(t, ok)
	assert.Equal(t, httpErr.Code, body.Error.Code)
	assert.Equal(t, httpErr.Message, body.Error.Message)
	assert.Equal(t, httpErr.Details, body.Error.Details)
}

func TestBuildersPanicOnInvalidStatus(t *testing.T) {
	assert.Panics(t, func() { SuccessWithStatus(nil, 99) })
	assert.Panics(t, func() { SuccessWithStatus(nil, 600) })
	assert.Panics(t, func() { Error("X", "y", 0) })
	assert.Panics(t, func() { ErrorWithDetails("X", "y", -1, nil) })

	assert.NotPanics(t, func() { SuccessWithStatus(nil, 100) })
	assert.NotPanics(t, func() { SuccessWithStatus(nil, 599) })
}

func TestWriteSetsStatusAndContentType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Write(c, Error("RATE_LIMITED", "Too many requests, please try again later", http.StatusTooManyRequests))

	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.JSONEq(t, `{"error": {"code": "RATE_LIMITED", "message": "Too many requests, please try again later"}}`, rec.Body.String())
}
