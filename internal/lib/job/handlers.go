package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deploylab/user-api/internal/config"
	"github.com/deploylab/user-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers wires the dependencies job handlers need. It must run
// before Start so the email client is available when tasks arrive.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(cfg, logger)
}

// handleWelcomeEmailTask processes the welcome email task: decode the
// payload, send the email, and return an error so Asynq retries on failure.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}
