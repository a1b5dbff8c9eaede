package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deckwise/backend/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("42601"))
	assert.Equal(t, Other, MapCode(""))
}

func TestConvertPgErrorPreservesMetadata(t *testing.T) {
	src := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "decks",
		ConstraintName: "unique_decks_name",
	}

	converted := ConvertPgError(src)

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, "23505", converted.DatabaseCode)
	assert.Equal(t, "decks", converted.TableName)

	// The original driver error stays reachable for errors.As.
	var pgErr *pgconn.PgError
	require.ErrorAs(t, converted, &pgErr)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "decks",
		ConstraintName: "unique_decks_name",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)

	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "DECK_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Deck with this identifier already exists", httpErr.Message)

	require.Contains(t, httpErr.Details, "name")
	violations := httpErr.Details["name"].([]map[string]string)
	require.Len(t, violations, 1)
	assert.Equal(t, "unique", violations[0]["constraint"])
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "generations",
		ColumnName: "deck_id",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "GENERATION_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Deck does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "generations",
		ColumnName: "source_text",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "GENERATION_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Source Text is required", httpErr.Message)
}

func TestHandleErrorNoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("fetching deck: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	err := HandleError(errors.New("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	// The underlying cause never leaks to clients.
	assert.NotContains(t, httpErr.Message, "connection reset")
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewNotFoundError("Deck not found", nil)

	err := HandleError(original)

	assert.Same(t, original, err)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_decks_name"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("decks_name_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_decks"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
