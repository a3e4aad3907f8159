// Package relay forwards live events between service instances over Redis
// pub/sub, so a user connected to any instance receives them.
package relay

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"pingup/backend/internal/hub"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	channelPrefix  = "live:"
	publishTimeout = 2 * time.Second
)

type envelope struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

// Relay delivers to the local hub first and publishes to the other
// instances on a local miss.
type Relay struct {
	hub      *hub.Hub
	rdb      redis.UniversalClient
	instance string
	log      logrus.FieldLogger
}

func New(h *hub.Hub, rdb redis.UniversalClient, log logrus.FieldLogger) *Relay {
	return &Relay{
		hub:      h,
		rdb:      rdb,
		instance: uuid.NewString(),
		log:      log,
	}
}

// Push reports local delivery only. Delivery through another instance is
// best-effort and unobserved.
func (r *Relay) Push(userID string, event hub.Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		r.log.WithError(err).WithField("event", event.Type).Error("Failed to encode live event")
		return false
	}
	if r.hub.PushRaw(userID, data) {
		return true
	}

	msg, err := json.Marshal(envelope{Origin: r.instance, Event: data})
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.rdb.Publish(ctx, channelPrefix+userID, msg).Err(); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("Failed to publish live event")
	}
	return false
}

// Run subscribes to every user channel and feeds the local hub until ctx
// is canceled.
func (r *Relay) Run(ctx context.Context) error {
	pubsub := r.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.log.Info("Live relay subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver(msg.Channel, msg.Payload)
		}
	}
}

func (r *Relay) deliver(channel, payload string) bool {
	userID := strings.TrimPrefix(channel, channelPrefix)
	if userID == "" || userID == channel {
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.WithError(err).WithField("channel", channel).Warn("Dropping malformed relay message")
		return false
	}
	if env.Origin == r.instance {
		return false
	}
	return r.hub.PushRaw(userID, env.Event)
}
