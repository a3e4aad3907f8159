package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker() *Worker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWorker(2, log)
}

func TestMemoryQueueEnqueueRunsHandler(t *testing.T) {
	w := newTestWorker()
	q := NewMemoryQueue(w)

	got := make(chan StoryExpirePayload, 1)
	w.Handle(StoryExpire, func(_ context.Context, raw json.RawMessage) error {
		var p StoryExpirePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		got <- p
		return nil
	})

	require.NoError(t, q.Enqueue(context.Background(), StoryExpire, StoryExpirePayload{StoryID: "s1"}))

	select {
	case p := <-got:
		assert.Equal(t, "s1", p.StoryID)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}
	w.Stop()
}

func TestMemoryQueueScheduleWaits(t *testing.T) {
	w := newTestWorker()
	q := NewMemoryQueue(w)

	done := make(chan time.Time, 1)
	w.Handle(StoryExpire, func(context.Context, json.RawMessage) error {
		done <- time.Now()
		return nil
	})

	start := time.Now()
	require.NoError(t, q.Schedule(context.Background(), StoryExpire, StoryExpirePayload{StoryID: "s1"}, start.Add(50*time.Millisecond)))
	assert.Equal(t, 1, q.Pending())

	select {
	case at := <-done:
		assert.GreaterOrEqual(t, at.Sub(start), 50*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job did not run")
	}
	assert.Zero(t, q.Pending())
	w.Stop()
}

func TestMemoryQueueStopDropsPending(t *testing.T) {
	w := newTestWorker()
	q := NewMemoryQueue(w)

	called := make(chan struct{}, 1)
	w.Handle(StoryExpire, func(context.Context, json.RawMessage) error {
		called <- struct{}{}
		return nil
	})

	require.NoError(t, q.Schedule(context.Background(), StoryExpire, nil, time.Now().Add(time.Hour)))
	q.Stop()
	assert.Zero(t, q.Pending())

	require.NoError(t, q.Schedule(context.Background(), StoryExpire, nil, time.Now().Add(time.Minute)))
	assert.Zero(t, q.Pending())
	w.Stop()
	assert.Empty(t, called)
}

func TestWorkerSurvivesFailuresAndUnknownJobs(t *testing.T) {
	w := newTestWorker()
	calls := make(chan struct{}, 2)
	w.Handle(UserDeleted, func(context.Context, json.RawMessage) error {
		calls <- struct{}{}
		return errors.New("boom")
	})

	w.Dispatch(Job{ID: "1", Name: "no.such.job"})
	w.Dispatch(Job{ID: "2", Name: UserDeleted})
	w.Dispatch(Job{ID: "3", Name: UserDeleted})
	w.Stop()

	assert.Len(t, calls, 2)
}

func TestNewJobRejectsUnencodablePayload(t *testing.T) {
	_, err := newJob("x", make(chan int), time.Now())
	assert.Error(t, err)
}
