package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGlobal(t *testing.T) *GlobalMiddlewares {
	t.Helper()

	log := zerolog.Nop()
	return NewGlobalMiddlewares(&server.Server{Logger: &log})
}

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	newTestGlobal(t).GlobalErrorHandler(err, c)
	return rec
}

func TestGlobalErrorHandlerRendersHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, errs.NewValidationError(map[string]any{
		"deck_id": []map[string]string{
			{"constraint": "uuid", "message": "must be a valid UUID"},
		},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "Validation failed",
			"details": {
				"deck_id": [{"constraint": "uuid", "message": "must be a valid UUID"}]
			}
		}
	}`, rec.Body.String())
}

func TestGlobalErrorHandlerMapsEchoNotFound(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": {"code": "NOT_FOUND", "message": "Route not found"}}`, rec.Body.String())
}

func TestGlobalErrorHandlerMapsOtherEchoErrors(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error": {"code": "METHOD_NOT_ALLOWED", "message": "Method Not Allowed"}}`, rec.Body.String())
}

func TestGlobalErrorHandlerSanitizesUnknownErrors(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("pq: something exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": {"code": "INTERNAL_SERVER_ERROR", "message": "Internal Server Error"}}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestGlobalErrorHandlerSkipsCommittedResponses(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.String(http.StatusOK, "already written"))

	newTestGlobal(t).GlobalErrorHandler(errs.NewInternalServerError(), c)

	// The original body stays untouched; nothing is appended.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "already written", rec.Body.String())
}
