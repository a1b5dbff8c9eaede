package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerationHandler(t *testing.T) *GenerationHandler {
	t.Helper()

	log := zerolog.Nop()
	return NewGenerationHandler(&server.Server{Logger: &log}, nil)
}

func TestGetGenerationRejectsMalformedID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/generations/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := newTestGenerationHandler(t).GetGeneration()(c)

	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationError, httpErr.Code)
	assert.Contains(t, httpErr.Details, "id")
}

func TestCreateGenerationRejectsInvalidPayload(t *testing.T) {
	body := `{"source_text": "` + strings.Repeat("a", 5001) + `", "deck_id": "nope"}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestGenerationHandler(t).CreateGeneration()(c)

	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeValidationError, httpErr.Code)
	assert.Contains(t, httpErr.Details, "source_text")
	assert.Contains(t, httpErr.Details, "deck_id")
}
