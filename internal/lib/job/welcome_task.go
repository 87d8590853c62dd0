package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type string Asynq routes to the welcome
	// email handler.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the serialized task payload stored in Redis.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// NewWelcomeEmailTask builds the Asynq task for sending a welcome email:
// up to 3 retries on the default queue, 30 second handler timeout.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcomeEmail builds and enqueues the welcome email task.
func (j *JobService) EnqueueWelcomeEmail(to, name string) error {
	task, err := NewWelcomeEmailTask(to, name)
	if err != nil {
		return err
	}
	_, err = j.Client.Enqueue(task)
	return err
}
