package hub

import (
	"encoding/json"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventMessage           = "message"
	EventConnectionRequest = "connection_request"
)

// Client is the outbound side of one live channel. The stream handler
// drains it; the hub closes it when the channel is replaced or shut down.
type Client chan []byte

const shardCount = 32

var (
	channelsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pingup_live_channels",
		Help: "Number of open live delivery channels.",
	})

	pushCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pingup_live_pushes_total",
		Help: "Live pushes by result.",
	}, []string{"result"})
)

type shard struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// Hub maps user ids to their open live channel. At most one channel is held
// per user; a newer registration replaces and closes the older one.
type Hub struct {
	shards [shardCount]*shard
	closed atomic.Bool
	log    logrus.FieldLogger
}

// New creates a Hub. It is created once at process start and injected.
func New(log logrus.FieldLogger) *Hub {
	h := &Hub{log: log}
	for i := range h.shards {
		h.shards[i] = &shard{clients: make(map[string]Client)}
	}
	return h
}

func (h *Hub) shardFor(userID string) *shard {
	f := fnv.New32a()
	_, _ = f.Write([]byte(userID))
	return h.shards[f.Sum32()%shardCount]
}

// Register makes client the live channel of userID. It returns false once
// the hub has been shut down.
func (h *Hub) Register(userID string, client Client) bool {
	s := h.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.closed.Load() {
		return false
	}

	if old, ok := s.clients[userID]; ok {
		if old == client {
			return true
		}
		close(old)
		channelsGauge.Dec()
		h.log.WithField("user_id", userID).Debug("Live channel replaced")
	}
	s.clients[userID] = client
	channelsGauge.Inc()
	return true
}

// Unregister removes client if it is still the channel registered for
// userID, and closes it. A stale client never removes a newer one.
func (h *Hub) Unregister(userID string, client Client) bool {
	s := h.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.clients[userID]
	if !ok || current != client {
		return false
	}
	delete(s.clients, userID)
	close(client)
	channelsGauge.Dec()
	return true
}

// Push encodes event and hands it to the user's channel without blocking.
// It reports whether the event was delivered to an open channel.
func (h *Hub) Push(userID string, event Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).WithField("event", event.Type).Error("Failed to encode live event")
		pushCounter.WithLabelValues("error").Inc()
		return false
	}
	return h.PushRaw(userID, data)
}

// PushRaw delivers an already encoded event.
func (h *Hub) PushRaw(userID string, data []byte) bool {
	s := h.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[userID]
	if !ok {
		pushCounter.WithLabelValues("offline").Inc()
		return false
	}

	// Use a non-blocking send to prevent a slow client from blocking the sender.
	select {
	case client <- data:
		pushCounter.WithLabelValues("delivered").Inc()
		return true
	default:
		pushCounter.WithLabelValues("dropped").Inc()
		h.log.WithField("user_id", userID).Warn("Live channel buffer full, event dropped")
		return false
	}
}

// IsConnected reports whether userID has an open channel on this hub.
func (h *Hub) IsConnected(userID string) bool {
	s := h.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[userID]
	return ok
}

// Len returns the number of open channels.
func (h *Hub) Len() int {
	n := 0
	for _, s := range h.shards {
		s.mu.RLock()
		n += len(s.clients)
		s.mu.RUnlock()
	}
	return n
}

// Shutdown closes every channel and refuses later registrations.
func (h *Hub) Shutdown() {
	h.closed.Store(true)
	for _, s := range h.shards {
		s.mu.Lock()
		for id, client := range s.clients {
			close(client)
			delete(s.clients, id)
			channelsGauge.Dec()
		}
		s.mu.Unlock()
	}
}
