package handler

import (
	"net/http"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/middleware"
	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/service"
	"github.com/deckwise/backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// createGenerationSchema validates the POST /api/generations payload.
//
// Constraint order within a field matters: a value failing the kind check
// reports only that, never a cascade of length errors. Bounds are
// inclusive and counted in characters, not bytes.
var createGenerationSchema = validation.New("create_generation",
	validation.String("source_text",
		validation.Required("source_text is required"),
		validation.MinLength(1, "source_text cannot be empty"),
		validation.MaxLength(5000, "source_text must not exceed 5000 characters"),
	),
	validation.UUID("deck_id",
		validation.Required("deck_id is required"),
	),
)

// GenerationHandler serves the flashcard generation endpoints.
type GenerationHandler struct {
	Handler
	services *service.Services
}

// NewGenerationHandler constructs a GenerationHandler.
func NewGenerationHandler(s *server.Server, services *service.Services) *GenerationHandler {
	return &GenerationHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// CreateGeneration handles POST /api/generations: accept source text for a
// deck and start the background pipeline. Responds 202 with the pending
// generation; card proposals arrive asynchronously.
func (h *GenerationHandler) CreateGeneration() echo.HandlerFunc {
	return Handle(h.Handler, h.createGeneration, http.StatusAccepted, createGenerationSchema)
}

func (h *GenerationHandler) createGeneration(c echo.Context, v *validation.Validated) (*repository.Generation, error) {
	userID := middleware.GetUserID(c)
	return h.services.Generations.StartGeneration(
		c.Request().Context(),
		userID,
		v.UUID("deck_id"),
		v.String("source_text"),
	)
}

// GetGeneration handles GET /api/generations/:id: return the generation's
// current status and, once completed, its card proposals.
func (h *GenerationHandler) GetGeneration() echo.HandlerFunc {
	return Handle(h.Handler, h.getGeneration, http.StatusOK, nil)
}

func (h *GenerationHandler) getGeneration(c echo.Context, _ *validation.Validated) (*service.GenerationDetail, error) {
	id := c.Param("id")
	if !validation.IsValidUUID(id) {
		violations := validation.Violations{{
			Field:      "id",
			Constraint: validation.RuleUUID,
			Message:    "must be a valid UUID",
		}}
		return nil, errs.NewValidationError(violations.Details())
	}

	userID := middleware.GetUserID(c)
	return h.services.Generations.GetGeneration(c.Request().Context(), userID, id)
}
