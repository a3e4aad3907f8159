package jobs

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue runs jobs in-process. Scheduled jobs are lost on restart.
type MemoryQueue struct {
	worker *Worker
	now    func() time.Time

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewMemoryQueue(worker *Worker) *MemoryQueue {
	return &MemoryQueue{
		worker: worker,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, name string, payload interface{}) error {
	return q.Schedule(ctx, name, payload, q.now())
}

func (q *MemoryQueue) Schedule(_ context.Context, name string, payload interface{}, runAt time.Time) error {
	job, err := newJob(name, payload, runAt)
	if err != nil {
		return err
	}

	delay := runAt.Sub(q.now())
	if delay <= 0 {
		q.worker.Dispatch(job)
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return nil
	}
	q.timers[job.ID] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, job.ID)
		q.mu.Unlock()
		q.worker.Dispatch(job)
	})
	return nil
}

// Pending returns the number of jobs waiting for their run time.
func (q *MemoryQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Stop drops jobs that have not started yet.
func (q *MemoryQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}
