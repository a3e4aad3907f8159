// Package jobs runs named background jobs, immediately or at a later time.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job names.
const (
	ConnectionRequested = "connection.requested"
	StoryExpire         = "story.expire"
	UserCreated         = "identity.user.created"
	UserUpdated         = "identity.user.updated"
	UserDeleted         = "identity.user.deleted"
)

// Job is one unit of deferred work.
type Job struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
	RunAt   time.Time       `json:"run_at"`
}

// Queue accepts jobs for later execution.
type Queue interface {
	Enqueue(ctx context.Context, name string, payload interface{}) error
	Schedule(ctx context.Context, name string, payload interface{}, runAt time.Time) error
}

// Handler processes the payload of one job.
type Handler func(ctx context.Context, payload json.RawMessage) error

func newJob(name string, payload interface{}, runAt time.Time) (Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("encode %s payload: %w", name, err)
	}
	return Job{ID: uuid.NewString(), Name: name, Payload: data, RunAt: runAt}, nil
}

// ConnectionRequestedPayload is sent when a connection request is created.
type ConnectionRequestedPayload struct {
	RequestID  string `json:"request_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

// StoryExpirePayload identifies the story to remove.
type StoryExpirePayload struct {
	StoryID string `json:"story_id"`
}

// IdentityPayload carries a user record from the identity provider.
type IdentityPayload struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
}
