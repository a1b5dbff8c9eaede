package handler

import (
	"net/http"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/lib/legal"
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// LegalHandler serves the public legal documents (terms, privacy).
type LegalHandler struct {
	Handler
}

// NewLegalHandler constructs a LegalHandler.
func NewLegalHandler(s *server.Server) *LegalHandler {
	return &LegalHandler{
		Handler: NewHandler(s),
	}
}

// GetDocument handles GET /api/legal/:slug. Unknown slugs get a plain 404.
func (h *LegalHandler) GetDocument() echo.HandlerFunc {
	return Handle(h.Handler, h.getDocument, http.StatusOK, nil)
}

func (h *LegalHandler) getDocument(c echo.Context, _ *validation.Validated) (*legal.Document, error) {
	doc, ok := legal.Get(c.Param("slug"))
	if !ok {
		return nil, errs.NewNotFoundError("Document not found", nil)
	}
	return doc, nil
}
