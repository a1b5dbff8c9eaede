package handler

import (
	"net/http"

	"github.com/deckwise/backend/internal/middleware"
	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/service"
	"github.com/deckwise/backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// createDeckSchema validates the POST /api/decks payload. Built once at
// init; schemas are immutable and shared across requests.
var createDeckSchema = validation.New("create_deck",
	validation.String("name",
		validation.Required("name is required"),
		validation.MinLength(1, "name cannot be empty"),
		validation.MaxLength(100, "name must not exceed 100 characters"),
	),
)

// DeckHandler serves the deck endpoints.
type DeckHandler struct {
	Handler
	services *service.Services
}

// NewDeckHandler constructs a DeckHandler.
func NewDeckHandler(s *server.Server, services *service.Services) *DeckHandler {
	return &DeckHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// CreateDeck handles POST /api/decks: create a deck owned by the
// authenticated user. Responds 201 with the stored deck.
func (h *DeckHandler) CreateDeck() echo.HandlerFunc {
	return Handle(h.Handler, h.createDeck, http.StatusCreated, createDeckSchema)
}

func (h *DeckHandler) createDeck(c echo.Context, v *validation.Validated) (*repository.Deck, error) {
	userID := middleware.GetUserID(c)
	return h.services.Decks.CreateDeck(c.Request().Context(), userID, v.String("name"))
}

// ListDecks handles GET /api/decks: list the authenticated user's decks,
// newest first.
func (h *DeckHandler) ListDecks() echo.HandlerFunc {
	return Handle(h.Handler, h.listDecks, http.StatusOK, nil)
}

func (h *DeckHandler) listDecks(c echo.Context, _ *validation.Validated) ([]repository.Deck, error) {
	userID := middleware.GetUserID(c)
	return h.services.Decks.ListDecks(c.Request().Context(), userID)
}
