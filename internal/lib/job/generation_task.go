package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskGenerationProcess is the job type for turning a pending
	// generation into card proposals.
	TaskGenerationProcess = "generation:process"

	// TaskGenerationReadyEmail is the job type for the completion
	// notification email.
	TaskGenerationReadyEmail = "email:generation_ready"
)

// GenerationProcessPayload identifies the generation a worker should
// process. The row itself is reloaded from the database so retries always
// see current state.
type GenerationProcessPayload struct {
	GenerationID string `json:"generation_id"`
}

// NewGenerationProcessTask constructs the asynq task for processing a
// generation. Generation work is retried up to 3 times and killed after 2
// minutes; the generation row is marked failed when retries are exhausted.
func NewGenerationProcessTask(generationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(GenerationProcessPayload{
		GenerationID: generationID,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskGenerationProcess,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(2*time.Minute),
	), nil
}

// GenerationReadyEmailPayload is the JSON payload for the completion
// notification task.
type GenerationReadyEmailPayload struct {
	To        string `json:"to"`
	DeckName  string `json:"deck_name"`
	CardCount int    `json:"card_count"`
}

// NewGenerationReadyEmailTask constructs the asynq task for the completion
// notification email.
func NewGenerationReadyEmailTask(to, deckName string, cardCount int) (*asynq.Task, error) {
	payload, err := json.Marshal(GenerationReadyEmailPayload{
		To:        to,
		DeckName:  deckName,
		CardCount: cardCount,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskGenerationReadyEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
