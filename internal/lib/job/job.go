// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: the asynq.Client enqueues tasks and
// the asynq.Server runs workers that process them. Generation processing
// runs here so the HTTP handler can accept a request and return
// immediately.
package job

import (
	"github.com/deckwise/backend/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs the workers that pull tasks from Redis.
	server *asynq.Server

	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis instance from
// config.
//
// Queue weights distribute the worker pool by ratio: generation processing
// runs on the critical queue so user-facing work is not starved by
// notification emails.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6, // generation processing
				"default":  3, // notifications
				"low":      1, // everything non-urgent
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the background worker server.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskGenerationProcess, j.handleGenerationTask)
	mux.HandleFunc(TaskGenerationReadyEmail, j.handleGenerationReadyEmailTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
