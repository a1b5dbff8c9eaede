package service

import (
	"github.com/deckwise/backend/internal/lib/job"
	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/server"
)

// Services groups all business logic services for dependency injection
// into handlers.
type Services struct {
	Auth        *AuthService
	Decks       *DeckService
	Generations *GenerationService
	Job         *job.JobService
}

// NewServices wires all services from the app container and repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	deckService := NewDeckService(s, repos)
	generationService := NewGenerationService(s, repos)

	return &Services{
		Auth:        authService,
		Decks:       deckService,
		Generations: generationService,
		Job:         s.Job,
	}, nil
}
