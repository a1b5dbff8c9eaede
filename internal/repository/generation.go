package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Generation statuses. A generation starts pending, moves to processing
// when a worker picks it up, and ends completed or failed. The status
// column is the source of truth for the background pipeline.
const (
	GenerationStatusPending    = "pending"
	GenerationStatusProcessing = "processing"
	GenerationStatusCompleted  = "completed"
	GenerationStatusFailed     = "failed"
)

// Generation is one request to produce flashcards from source text.
type Generation struct {
	ID         string    `json:"id"`
	DeckID     string    `json:"deck_id"`
	UserID     string    `json:"-"`
	SourceText string    `json:"-"`
	Status     string    `json:"status"`
	Model      string    `json:"model,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Card is a proposed flashcard produced by a generation.
type Card struct {
	ID           string    `json:"id"`
	GenerationID string    `json:"-"`
	DeckID       string    `json:"deck_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	CreatedAt    time.Time `json:"created_at"`
}

// GenerationRepository performs generation and card persistence.
type GenerationRepository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewGenerationRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *GenerationRepository {
	return &GenerationRepository{pool: pool, logger: logger}
}

// Create inserts a pending generation and returns the stored row.
func (r *GenerationRepository) Create(ctx context.Context, userID, deckID, sourceText string) (*Generation, error) {
	const query = `
		insert into generations (deck_id, user_id, source_text)
		values ($1, $2, $3)
		returning id, deck_id, user_id, source_text, status, model, error, created_at, updated_at`

	gen := &Generation{}
	err := r.pool.QueryRow(ctx, query, deckID, userID, sourceText).Scan(
		&gen.ID, &gen.DeckID, &gen.UserID, &gen.SourceText,
		&gen.Status, &gen.Model, &gen.Error, &gen.CreatedAt, &gen.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting generation: %w", err)
	}

	return gen, nil
}

// GetByID fetches a generation without an ownership filter, for background
// workers operating on ids taken from the job queue.
func (r *GenerationRepository) GetByID(ctx context.Context, id string) (*Generation, error) {
	return r.get(ctx, `
		select id, deck_id, user_id, source_text, status, model, error, created_at, updated_at
		from generations
		where id = $1`, id)
}

// GetByIDForUser fetches a generation only if it belongs to the user.
func (r *GenerationRepository) GetByIDForUser(ctx context.Context, id, userID string) (*Generation, error) {
	return r.get(ctx, `
		select id, deck_id, user_id, source_text, status, model, error, created_at, updated_at
		from generations
		where id = $1 and user_id = $2`, id, userID)
}

func (r *GenerationRepository) get(ctx context.Context, query string, args ...any) (*Generation, error) {
	gen := &Generation{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&gen.ID, &gen.DeckID, &gen.UserID, &gen.SourceText,
		&gen.Status, &gen.Model, &gen.Error, &gen.CreatedAt, &gen.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// MarkProcessing transitions a pending generation to processing and
// records the model that will handle it.
func (r *GenerationRepository) MarkProcessing(ctx context.Context, id, model string) error {
	const query = `
		update generations
		set status = $2, model = $3, updated_at = now()
		where id = $1`

	if _, err := r.pool.Exec(ctx, query, id, GenerationStatusProcessing, model); err != nil {
		return fmt.Errorf("marking generation processing: %w", err)
	}
	return nil
}

// Complete stores the proposed cards and marks the generation completed,
// atomically. A retried job that already completed replaces its proposals
// rather than duplicating them.
func (r *GenerationRepository) Complete(ctx context.Context, gen *Generation, proposals []Card) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning completion transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `delete from cards where generation_id = $1`, gen.ID); err != nil {
		return fmt.Errorf("clearing previous proposals: %w", err)
	}

	const insert = `
		insert into cards (generation_id, deck_id, front, back)
		values ($1, $2, $3, $4)`
	for _, card := range proposals {
		if _, err := tx.Exec(ctx, insert, gen.ID, gen.DeckID, card.Front, card.Back); err != nil {
			return fmt.Errorf("inserting card proposal: %w", err)
		}
	}

	const update = `
		update generations
		set status = $2, error = '', updated_at = now()
		where id = $1`
	if _, err := tx.Exec(ctx, update, gen.ID, GenerationStatusCompleted); err != nil {
		return fmt.Errorf("marking generation completed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing completion transaction: %w", err)
	}
	return nil
}

// MarkFailed records a terminal failure with its reason.
func (r *GenerationRepository) MarkFailed(ctx context.Context, id, reason string) error {
	const query = `
		update generations
		set status = $2, error = $3, updated_at = now()
		where id = $1`

	if _, err := r.pool.Exec(ctx, query, id, GenerationStatusFailed, reason); err != nil {
		return fmt.Errorf("marking generation failed: %w", err)
	}
	return nil
}

// ListCards returns the proposed cards for a generation in insertion order.
func (r *GenerationRepository) ListCards(ctx context.Context, generationID string) ([]Card, error) {
	const query = `
		select id, generation_id, deck_id, front, back, created_at
		from cards
		where generation_id = $1
		order by created_at, id`

	rows, err := r.pool.Query(ctx, query, generationID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		var card Card
		if err := rows.Scan(&card.ID, &card.GenerationID, &card.DeckID, &card.Front, &card.Back, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}

	return cards, nil
}
