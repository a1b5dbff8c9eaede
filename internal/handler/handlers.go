package handler

import (
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one wired
// object.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Legal      *LegalHandler
	Deck       *DeckHandler
	Generation *GenerationHandler
}

// NewHandlers constructs the handler container from the app container and
// the business layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Legal:      NewLegalHandler(s),
		Deck:       NewDeckHandler(s, services),
		Generation: NewGenerationHandler(s, services),
	}
}
