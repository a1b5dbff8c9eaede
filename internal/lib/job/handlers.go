package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/deckwise/backend/internal/config"
	"github.com/deckwise/backend/internal/database"
	"github.com/deckwise/backend/internal/lib/ai"
	"github.com/deckwise/backend/internal/lib/email"
	"github.com/deckwise/backend/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Package-level handler dependencies, set once by InitHandlers before the
// worker server starts. Handlers must not run before initialization.
var (
	emailClient *email.Client
	aiClient    *ai.Client
	repos       *repository.Repositories
)

// InitHandlers initializes the dependencies required by job handlers: the
// email client, the card generation client, and repositories on the shared
// pool. It also sets the Clerk key so workers can resolve user email
// addresses.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, db *database.Database) {
	clerk.SetKey(cfg.Auth.SecretKey)

	emailClient = email.NewClient(cfg, logger)
	repos = repository.NewRepositories(db.Pool, logger)

	client, err := ai.NewClient(cfg, logger)
	if err != nil {
		// Without a generation client the worker cannot do its core job.
		logger.Fatal().Err(err).Msg("failed to initialize card generation client")
	}
	aiClient = client
}

// handleGenerationTask processes one generation: load the row, ask the
// model for card proposals, store them, and enqueue the notification
// email. Returning an error makes Asynq retry; the row is only marked
// failed on the final attempt so a transient model error does not
// permanently fail the generation.
func (j *JobService) handleGenerationTask(ctx context.Context, t *asynq.Task) error {
	var p GenerationProcessPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal generation payload: %w", err)
	}

	log := j.logger.With().
		Str("type", TaskGenerationProcess).
		Str("generation_id", p.GenerationID).
		Logger()

	gen, err := repos.Generations.GetByID(ctx, p.GenerationID)
	if err != nil {
		return fmt.Errorf("loading generation %s: %w", p.GenerationID, err)
	}

	if gen.Status == repository.GenerationStatusCompleted {
		log.Info().Msg("generation already completed, skipping")
		return nil
	}

	if err := repos.Generations.MarkProcessing(ctx, gen.ID, aiClient.Model()); err != nil {
		return err
	}

	log.Info().Msg("processing generation")

	proposals, err := aiClient.GenerateCards(ctx, gen.SourceText)
	if err != nil {
		log.Error().Err(err).Msg("card generation failed")
		j.failOnLastAttempt(ctx, gen.ID, err)
		return err
	}

	cards := make([]repository.Card, len(proposals))
	for i, proposal := range proposals {
		cards[i] = repository.Card{Front: proposal.Front, Back: proposal.Back}
	}

	if err := repos.Generations.Complete(ctx, gen, cards); err != nil {
		log.Error().Err(err).Msg("failed to store card proposals")
		j.failOnLastAttempt(ctx, gen.ID, err)
		return err
	}

	log.Info().Int("cards", len(cards)).Msg("generation completed")

	j.enqueueReadyEmail(ctx, gen, len(cards))
	return nil
}

// failOnLastAttempt marks the generation failed when no retries remain.
func (j *JobService) failOnLastAttempt(ctx context.Context, generationID string, cause error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if retried < maxRetry {
		return
	}

	if err := repos.Generations.MarkFailed(ctx, generationID, cause.Error()); err != nil {
		j.logger.Error().Err(err).
			Str("generation_id", generationID).
			Msg("failed to mark generation failed")
	}
}

// enqueueReadyEmail schedules the completion notification. The email is
// best effort: a missing address or enqueue failure logs and moves on, it
// never fails the generation.
func (j *JobService) enqueueReadyEmail(ctx context.Context, gen *repository.Generation, cardCount int) {
	address, err := primaryEmailAddress(ctx, gen.UserID)
	if err != nil {
		j.logger.Warn().Err(err).
			Str("user_id", gen.UserID).
			Msg("could not resolve user email, skipping notification")
		return
	}

	deck, err := repos.Decks.GetByIDForUser(ctx, gen.DeckID, gen.UserID)
	if err != nil {
		j.logger.Warn().Err(err).
			Str("deck_id", gen.DeckID).
			Msg("could not load deck for notification")
		return
	}

	task, err := NewGenerationReadyEmailTask(address, deck.Name, cardCount)
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to build notification task")
		return
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		j.logger.Error().Err(err).Msg("failed to enqueue notification task")
	}
}

// primaryEmailAddress resolves a Clerk user's primary email address.
func primaryEmailAddress(ctx context.Context, userID string) (string, error) {
	usr, err := clerkuser.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetching clerk user: %w", err)
	}

	if usr.PrimaryEmailAddressID != nil {
		for _, address := range usr.EmailAddresses {
			if address.ID == *usr.PrimaryEmailAddressID {
				return address.EmailAddress, nil
			}
		}
	}
	if len(usr.EmailAddresses) > 0 {
		return usr.EmailAddresses[0].EmailAddress, nil
	}

	return "", fmt.Errorf("user %s has no email address", userID)
}

// handleGenerationReadyEmailTask sends the completion notification email.
func (j *JobService) handleGenerationReadyEmailTask(ctx context.Context, t *asynq.Task) error {
	var p GenerationReadyEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %w", err)
	}

	log := j.logger.With().
		Str("type", TaskGenerationReadyEmail).
		Str("to", p.To).
		Logger()

	log.Info().Msg("sending generation ready email")

	if err := emailClient.SendGenerationReadyEmail(p.To, p.DeckName, p.CardCount); err != nil {
		log.Error().Err(err).Msg("failed to send generation ready email")
		return err
	}

	log.Info().Msg("generation ready email sent")
	return nil
}
