package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repositories is the container for all repository instances, constructed
// once and shared through the service layer.
type Repositories struct {
	Decks       *DeckRepository
	Generations *GenerationRepository
}

// NewRepositories constructs the repository container from the shared
// connection pool.
func NewRepositories(pool *pgxpool.Pool, logger *zerolog.Logger) *Repositories {
	return &Repositories{
		Decks:       NewDeckRepository(pool, logger),
		Generations: NewGenerationRepository(pool, logger),
	}
}
