// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued through
// asynq.Client and consumed by workers run by asynq.Server.
package job

import (
	"github.com/deploylab/user-api/internal/config"
	"github.com/deploylab/user-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution), plus the email client its handlers depend on.
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis instance from
// config. Queue weights give important tasks a larger share of the worker
// pool.
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
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the worker server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
