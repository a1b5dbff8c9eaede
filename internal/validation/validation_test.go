package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deckwise/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateAcceptsValidBody(t *testing.T) {
	c := newJSONContext(t, `{"source_text": "hello", "deck_id": "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111"}`)

	v, err := BindAndValidate(c, generationSchema())

	require.NoError(t, err)
	assert.Equal(t, "hello", v.String("source_text"))
}

func TestBindAndValidateReturnsValidationError(t *testing.T) {
	c := newJSONContext(t, `{"source_text": "", "deck_id": "nope"}`)

	v, err := BindAndValidate(c, generationSchema())

	assert.Nil(t, v)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationError, httpErr.Code)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Contains(t, httpErr.Details, "source_text")
	assert.Contains(t, httpErr.Details, "deck_id")
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	c := newJSONContext(t, `{"source_text": `)

	v, err := BindAndValidate(c, generationSchema())

	assert.Nil(t, v)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	// No field details: nothing could be examined.
	assert.Nil(t, httpErr.Details)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111"))
	assert.True(t, IsValidUUID("6F1E6A30-10C7-4C3F-9F65-93D2C8C8A111"), "uppercase hex is canonical too")

	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("6f1e6a30-10c7-4c3f-9f65"))
	assert.False(t, IsValidUUID("6f1e6a3010c74c3f9f6593d2c8c8a111"), "dashes are mandatory")
	assert.False(t, IsValidUUID("6f1e6a30-10c7-4c3f-9f65-93d2c8c8a11g"), "non-hex digit")
	assert.False(t, IsValidUUID(" 6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111"), "no surrounding whitespace")
}
