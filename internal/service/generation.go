package service

import (
	"context"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/lib/job"
	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// GenerationService owns the lifecycle of flashcard generations: accepting
// a request, persisting it, and handing it to the background pipeline.
type GenerationService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewGenerationService constructs a GenerationService.
func NewGenerationService(s *server.Server, repos *repository.Repositories) *GenerationService {
	return &GenerationService{
		server: s,
		repos:  repos,
	}
}

// GenerationDetail is a generation together with its proposed cards.
// Cards is empty (not absent) until the generation completes.
type GenerationDetail struct {
	*repository.Generation
	Cards []repository.Card `json:"cards"`
}

// StartGeneration persists a pending generation for the user's deck and
// enqueues the processing job. It returns the stored row immediately; card
// proposals arrive asynchronously.
//
// The deck ownership check runs first so a deck_id pointing at another
// user's deck yields the same 404 as a nonexistent one.
func (gs *GenerationService) StartGeneration(ctx context.Context, userID, deckID, sourceText string) (*repository.Generation, error) {
	if _, err := gs.repos.Decks.GetByIDForUser(ctx, deckID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Deck not found", nil)
		}
		return nil, err
	}

	gen, err := gs.repos.Generations.Create(ctx, userID, deckID, sourceText)
	if err != nil {
		return nil, err
	}

	task, err := job.NewGenerationProcessTask(gen.ID)
	if err != nil {
		return nil, errors.Wrap(err, "building generation task")
	}

	if _, err := gs.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		// The row exists but no worker will pick it up; fail the row so the
		// client is not left polling a generation that never progresses.
		if markErr := gs.repos.Generations.MarkFailed(ctx, gen.ID, "could not enqueue processing job"); markErr != nil {
			gs.server.Logger.Error().Err(markErr).
				Str("generation_id", gen.ID).
				Msg("failed to mark generation failed after enqueue error")
		}
		return nil, errors.Wrap(err, "enqueueing generation task")
	}

	return gen, nil
}

// GetGeneration returns the user's generation with its card proposals.
// A generation owned by someone else is reported as not found.
func (gs *GenerationService) GetGeneration(ctx context.Context, userID, generationID string) (*GenerationDetail, error) {
	gen, err := gs.repos.Generations.GetByIDForUser(ctx, generationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Generation not found", nil)
		}
		return nil, err
	}

	cards, err := gs.repos.Generations.ListCards(ctx, generationID)
	if err != nil {
		return nil, err
	}

	return &GenerationDetail{
		Generation: gen,
		Cards:      cards,
	}, nil
}
