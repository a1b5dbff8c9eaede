package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Deck is a user-owned collection of flashcards.
type Deck struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckRepository performs deck persistence operations.
type DeckRepository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewDeckRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *DeckRepository {
	return &DeckRepository{pool: pool, logger: logger}
}

// Create inserts a deck for the given user and returns the stored row.
// A duplicate (user_id, name) pair surfaces as a unique violation.
func (r *DeckRepository) Create(ctx context.Context, userID, name string) (*Deck, error) {
	const query = `
		insert into decks (user_id, name)
		values ($1, $2)
		returning id, user_id, name, created_at`

	deck := &Deck{}
	err := r.pool.QueryRow(ctx, query, userID, name).
		Scan(&deck.ID, &deck.UserID, &deck.Name, &deck.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting deck: %w", err)
	}

	return deck, nil
}

// ListByUser returns all decks owned by the user, newest first.
func (r *DeckRepository) ListByUser(ctx context.Context, userID string) ([]Deck, error) {
	const query = `
		select id, user_id, name, created_at
		from decks
		where user_id = $1
		order by created_at desc`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	defer rows.Close()

	decks := []Deck{}
	for rows.Next() {
		var deck Deck
		if err := rows.Scan(&deck.ID, &deck.UserID, &deck.Name, &deck.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning deck row: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deck rows: %w", err)
	}

	return decks, nil
}

// GetByIDForUser fetches a deck only if it belongs to the user. A deck
// owned by someone else is indistinguishable from a missing one
// (pgx.ErrNoRows), so ownership is never leaked.
func (r *DeckRepository) GetByIDForUser(ctx context.Context, deckID, userID string) (*Deck, error) {
	const query = `
		select id, user_id, name, created_at
		from decks
		where id = $1 and user_id = $2`

	deck := &Deck{}
	err := r.pool.QueryRow(ctx, query, deckID, userID).
		Scan(&deck.ID, &deck.UserID, &deck.Name, &deck.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("fetching deck: %w", err)
	}

	return deck, nil
}
