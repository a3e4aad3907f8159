// Package notify tells users about new connection requests, live and by
// push notification.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/hub"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/models"
	"pingup/backend/internal/users"

	"github.com/sirupsen/logrus"
)

type TokenStore interface {
	UpsertDeviceToken(ctx context.Context, userID, token, platform string, when time.Time) (models.DeviceToken, error)
	DeleteDeviceToken(ctx context.Context, userID, token string) error
	ListDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error)
}

type PushSender interface {
	Send(ctx context.Context, token string, msg Message) error
}

type Pusher interface {
	Push(userID string, event hub.Event) bool
}

type SummaryResolver interface {
	Summaries(ctx context.Context, ids []string) map[string]users.Summary
}

type Service struct {
	Tokens    TokenStore
	Sender    PushSender
	Live      Pusher
	Summaries SummaryResolver
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

func (s *Service) RegisterToken(ctx context.Context, userID, token, platform string) (models.DeviceToken, error) {
	token = strings.TrimSpace(token)
	platform = strings.TrimSpace(strings.ToLower(platform))
	if token == "" {
		return models.DeviceToken{}, apperr.Validation("token", "required")
	}
	switch platform {
	case "android", "ios":
	default:
		return models.DeviceToken{}, apperr.Validation("platform", "must be android or ios")
	}
	return s.Tokens.UpsertDeviceToken(ctx, userID, token, platform, s.now().Truncate(time.Millisecond))
}

func (s *Service) DeleteToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation("token", "required")
	}
	return s.Tokens.DeleteDeviceToken(ctx, userID, token)
}

// RegisterJobs wires the connection.requested handler into w.
func (s *Service) RegisterJobs(w *jobs.Worker) {
	w.Handle(jobs.ConnectionRequested, func(ctx context.Context, raw json.RawMessage) error {
		var p jobs.ConnectionRequestedPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode connection.requested payload: %w", err)
		}
		return s.NotifyConnectionRequest(ctx, p)
	})
}

// ConnectionRequestEvent is the live payload sent to the addressee.
type ConnectionRequestEvent struct {
	RequestID string        `json:"request_id"`
	From      users.Summary `json:"from"`
}

// NotifyConnectionRequest pushes a live event to the addressee and a push
// notification to each of their devices. Tokens FCM reports as
// unregistered are deleted.
func (s *Service) NotifyConnectionRequest(ctx context.Context, p jobs.ConnectionRequestedPayload) error {
	log := s.logger().WithFields(logrus.Fields{"request_id": p.RequestID, "user_id": p.ToUserID})
	from := s.Summaries.Summaries(ctx, []string{p.FromUserID})[p.FromUserID]

	if s.Live != nil {
		s.Live.Push(p.ToUserID, hub.Event{
			Type:    hub.EventConnectionRequest,
			Payload: ConnectionRequestEvent{RequestID: p.RequestID, From: from},
		})
	}

	if s.Sender == nil || s.Tokens == nil {
		return nil
	}
	tokens, err := s.Tokens.ListDeviceTokens(ctx, p.ToUserID)
	if err != nil {
		log.WithError(err).Error("List device tokens failed")
		return err
	}

	display := strings.TrimSpace(from.FullName)
	if display == "" {
		display = from.Username
	}
	msg := Message{
		Data: map[string]string{
			"type":       "connection_request",
			"request_id": p.RequestID,
			"username":   from.Username,
		},
		Notification: &Notification{
			Title: "New connection request",
			Body:  display + " wants to connect with you.",
		},
	}

	for _, t := range tokens {
		if err := s.Sender.Send(ctx, t.Token, msg); err != nil {
			if errors.Is(err, ErrInvalidToken) {
				if delErr := s.Tokens.DeleteDeviceToken(ctx, p.ToUserID, t.Token); delErr != nil {
					log.WithError(delErr).Error("Delete invalid device token failed")
				}
				continue
			}
			log.WithError(err).WithField("platform", t.Platform).Warn("Push notification failed")
		}
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
