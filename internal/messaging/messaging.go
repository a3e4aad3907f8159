// Package messaging stores direct messages and pushes them to the
// recipient's live channel.
package messaging

import (
	"context"
	"strings"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/hub"
	"pingup/backend/internal/models"
	"pingup/backend/internal/users"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Store interface {
	FindUser(ctx context.Context, id string) (models.User, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListThread(ctx context.Context, a, b string) ([]models.Message, error)
	MarkSeen(ctx context.Context, fromUserID, toUserID string) (int64, error)
	ListMessagesTo(ctx context.Context, userID string) ([]models.Message, error)
}

// Pusher delivers an event to a user's live channel, if one is open.
type Pusher interface {
	Push(userID string, event hub.Event) bool
}

type SummaryResolver interface {
	Summaries(ctx context.Context, ids []string) map[string]users.Summary
}

type Service struct {
	Messages  Store
	Live      Pusher
	Summaries SummaryResolver
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

// Message is a stored message with both parties resolved for display.
type Message struct {
	ID          string             `json:"id"`
	FromUserID  string             `json:"from_user_id"`
	ToUserID    string             `json:"to_user_id"`
	From        users.Summary      `json:"from_user"`
	To          users.Summary      `json:"to_user"`
	Text        string             `json:"text,omitempty"`
	MediaURL    string             `json:"media_url,omitempty"`
	MessageType models.MessageType `json:"message_type"`
	Seen        bool               `json:"seen"`
	CreatedAt   time.Time          `json:"created_at"`
}

type SendResult struct {
	Message   Message `json:"message"`
	Delivered bool    `json:"delivered"`
}

// Send persists a message and then pushes it to the recipient. The push is
// best-effort; the stored message is what later reads return. Messages to
// unknown users fail with apperr.ErrUserNotFound and are not stored.
func (s *Service) Send(ctx context.Context, fromUserID, toUserID, text, mediaURL string) (SendResult, error) {
	toUserID = strings.TrimSpace(toUserID)
	if toUserID == "" {
		return SendResult{}, apperr.Validation("to_user_id", "required")
	}
	mediaURL = strings.TrimSpace(mediaURL)
	if strings.TrimSpace(text) == "" && mediaURL == "" {
		return SendResult{}, apperr.ErrEmptyMessage
	}
	if _, err := s.Messages.FindUser(ctx, toUserID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return SendResult{}, apperr.ErrUserNotFound
		}
		return SendResult{}, err
	}

	msgType := models.MessageTypeText
	if mediaURL != "" {
		msgType = models.MessageTypeImage
	}
	msg := models.Message{
		ID:          uuid.NewString(),
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Text:        text,
		MediaURL:    mediaURL,
		MessageType: msgType,
		Seen:        false,
		CreatedAt:   s.now(),
	}
	if err := s.Messages.CreateMessage(ctx, &msg); err != nil {
		return SendResult{}, err
	}

	enriched := s.enrich(ctx, []models.Message{msg})[0]
	delivered := false
	if s.Live != nil {
		delivered = s.Live.Push(toUserID, hub.Event{Type: hub.EventMessage, Payload: enriched})
	}
	s.logger().WithFields(logrus.Fields{
		"message_id": msg.ID,
		"from":       fromUserID,
		"to":         toUserID,
		"delivered":  delivered,
	}).Debug("Message sent")

	return SendResult{Message: enriched, Delivered: delivered}, nil
}

// Thread returns the conversation between userID and otherID, newest
// first, then marks everything otherID sent to userID as seen. The
// returned messages carry the state from before the update.
func (s *Service) Thread(ctx context.Context, userID, otherID string) ([]Message, error) {
	if strings.TrimSpace(otherID) == "" {
		return nil, apperr.Validation("to_user_id", "required")
	}
	msgs, err := s.Messages.ListThread(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Messages.MarkSeen(ctx, otherID, userID); err != nil {
		return nil, err
	}
	return s.enrich(ctx, msgs), nil
}

// Recent returns the messages userID has received, newest first.
func (s *Service) Recent(ctx context.Context, userID string) ([]Message, error) {
	msgs, err := s.Messages.ListMessagesTo(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, msgs), nil
}

func (s *Service) enrich(ctx context.Context, msgs []models.Message) []Message {
	ids := make([]string, 0, 2*len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.FromUserID, m.ToUserID)
	}
	summaries := s.Summaries.Summaries(ctx, ids)

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Message{
			ID:          m.ID,
			FromUserID:  m.FromUserID,
			ToUserID:    m.ToUserID,
			From:        summaries[m.FromUserID],
			To:          summaries[m.ToUserID],
			Text:        m.Text,
			MediaURL:    m.MediaURL,
			MessageType: m.MessageType,
			Seen:        m.Seen,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
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
