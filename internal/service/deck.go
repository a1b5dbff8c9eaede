package service

import (
	"context"

	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/server"
)

// DeckService implements deck operations on top of the deck repository.
type DeckService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewDeckService constructs a DeckService.
func NewDeckService(s *server.Server, repos *repository.Repositories) *DeckService {
	return &DeckService{
		server: s,
		repos:  repos,
	}
}

// CreateDeck creates a deck owned by userID. A duplicate name for the same
// user surfaces as a unique violation, which the error funnel turns into a
// 409 with a stable code.
func (ds *DeckService) CreateDeck(ctx context.Context, userID, name string) (*repository.Deck, error) {
	return ds.repos.Decks.Create(ctx, userID, name)
}

// ListDecks returns the user's decks, newest first.
func (ds *DeckService) ListDecks(ctx context.Context, userID string) ([]repository.Deck, error) {
	return ds.repos.Decks.ListByUser(ctx, userID)
}
