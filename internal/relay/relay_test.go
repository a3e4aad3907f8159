package relay

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"pingup/backend/internal/hub"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay() (*Relay, *hub.Hub) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := hub.New(log)
	return New(h, nil, log), h
}

func encode(t *testing.T, origin string, event hub.Event) string {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	msg, err := json.Marshal(envelope{Origin: origin, Event: data})
	require.NoError(t, err)
	return string(msg)
}

func TestPushDeliversLocallyWithoutPublishing(t *testing.T) {
	r, h := newTestRelay()
	c := make(hub.Client, 1)
	h.Register("bob", c)

	// rdb is nil: a publish attempt would panic.
	assert.True(t, r.Push("bob", hub.Event{Type: hub.EventMessage}))
	assert.Len(t, c, 1)
}

func TestDeliverFromOtherInstance(t *testing.T) {
	r, h := newTestRelay()
	c := make(hub.Client, 1)
	h.Register("bob", c)

	ok := r.deliver("live:bob", encode(t, "other-instance", hub.Event{Type: hub.EventMessage, Payload: "hi"}))
	require.True(t, ok)

	var got hub.Event
	require.NoError(t, json.Unmarshal(<-c, &got))
	assert.Equal(t, hub.EventMessage, got.Type)
	assert.Equal(t, "hi", got.Payload)
}

func TestDeliverSkipsOwnPublications(t *testing.T) {
	r, h := newTestRelay()
	c := make(hub.Client, 1)
	h.Register("bob", c)

	assert.False(t, r.deliver("live:bob", encode(t, r.instance, hub.Event{Type: hub.EventMessage})))
	assert.Empty(t, c)
}

func TestDeliverRejectsBadInput(t *testing.T) {
	r, _ := newTestRelay()

	assert.False(t, r.deliver("other:bob", encode(t, "x", hub.Event{})))
	assert.False(t, r.deliver("live:bob", "not json"))
}

func TestPushReachesClientOnAnotherInstance(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	newInstance := func() (*Relay, *hub.Hub) {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rdb.Close() })
		h := hub.New(log)
		return New(h, rdb, log), h
	}
	sender, _ := newInstance()
	receiver, receiverHub := newInstance()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- receiver.Run(ctx) }()
	require.Eventually(t, func() bool { return mr.PubSubNumPat() == 1 }, 2*time.Second, 10*time.Millisecond)

	c := make(hub.Client, 1)
	require.True(t, receiverHub.Register("bob", c))

	assert.False(t, sender.Push("bob", hub.Event{Type: hub.EventMessage, Payload: "hi"}), "no local client on the sender")

	select {
	case data := <-c:
		var got hub.Event
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, hub.EventMessage, got.Type)
		assert.Equal(t, "hi", got.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not relayed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}
