package jobs

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultKey   = "pingup:jobs"
	pollInterval = time.Second
	pollBatch    = 100
)

// RedisQueue keeps jobs in a sorted set scored by run time. Any number of
// instances may poll it; ZREM decides which one runs a job.
type RedisQueue struct {
	rdb    redis.UniversalClient
	worker *Worker
	key    string
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewRedisQueue(rdb redis.UniversalClient, worker *Worker, log logrus.FieldLogger) *RedisQueue {
	return &RedisQueue{
		rdb:    rdb,
		worker: worker,
		key:    defaultKey,
		log:    log,
		now:    time.Now,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, name string, payload interface{}) error {
	return q.Schedule(ctx, name, payload, q.now())
}

func (q *RedisQueue) Schedule(ctx context.Context, name string, payload interface{}, runAt time.Time) error {
	job, err := newJob(name, payload, runAt)
	if err != nil {
		return err
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(runAt.UnixMilli()),
		Member: string(data),
	}).Err()
}

// Run polls for due jobs until ctx is canceled.
func (q *RedisQueue) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := q.poll(ctx); err != nil && ctx.Err() == nil {
				q.log.WithError(err).Warn("Job poll failed")
			}
		}
	}
}

func (q *RedisQueue) poll(ctx context.Context) error {
	due, err := q.rdb.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(q.now().UnixMilli(), 10),
		Count: pollBatch,
	}).Result()
	if err != nil {
		return err
	}

	for _, member := range due {
		claimed, err := q.rdb.ZRem(ctx, q.key, member).Result()
		if err != nil {
			return err
		}
		if claimed != 1 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(member), &job); err != nil {
			q.log.WithError(err).Error("Dropping malformed job")
			continue
		}
		q.worker.Dispatch(job)
	}
	return nil
}
