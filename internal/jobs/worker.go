package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 30 * time.Second

var jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pingup_jobs_processed_total",
	Help: "Background jobs processed by name and result.",
}, []string{"name", "result"})

// Worker dispatches jobs to registered handlers on a bounded pool.
type Worker struct {
	pool     pond.Pool
	log      logrus.FieldLogger
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewWorker(size int, log logrus.FieldLogger) *Worker {
	if size <= 0 {
		size = 1
	}
	return &Worker{
		pool:     pond.NewPool(size),
		log:      log,
		handlers: make(map[string]Handler),
	}
}

// Handle registers h for jobs named name, replacing any earlier handler.
func (w *Worker) Handle(name string, h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[name] = h
}

// Dispatch submits job to the pool. Jobs without a handler are dropped.
func (w *Worker) Dispatch(job Job) {
	w.mu.RLock()
	h, ok := w.handlers[job.Name]
	w.mu.RUnlock()

	log := w.log.WithFields(logrus.Fields{"job": job.Name, "job_id": job.ID})
	if !ok {
		log.Warn("No handler registered for job")
		jobsProcessed.WithLabelValues(job.Name, "unhandled").Inc()
		return
	}

	w.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := h(ctx, job.Payload); err != nil {
			log.WithError(err).Error("Job failed")
			jobsProcessed.WithLabelValues(job.Name, "error").Inc()
			return
		}
		jobsProcessed.WithLabelValues(job.Name, "ok").Inc()
	})
}

// Stop waits for running jobs to finish.
func (w *Worker) Stop() {
	w.pool.StopAndWait()
}
