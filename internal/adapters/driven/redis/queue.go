package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TaskQueue = (*TaskQueue)(nil)

const queueKey = "essaycore:ingest:queue"

// TaskQueue implements driven.TaskQueue on a Redis list. Producers LPUSH,
// the worker BRPOPs, so tasks are delivered in FIFO order and a blocked
// worker wakes as soon as a task arrives.
type TaskQueue struct {
	client *redis.Client
}

// NewTaskQueue creates a new Redis-backed TaskQueue
func NewTaskQueue(client *redis.Client) *TaskQueue {
	return &TaskQueue{client: client}
}

// Enqueue adds a task to the queue
func (q *TaskQueue) Enqueue(ctx context.Context, task *domain.IngestTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, queueKey, data).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next task.
// Returns nil, nil when the timeout elapses with no task.
func (q *TaskQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.IngestTask, error) {
	result, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue task: %w", err)
	}

	// BRPop returns [key, value]
	var task domain.IngestTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

// Len returns the number of pending tasks
func (q *TaskQueue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, queueKey).Result()
	return int(n), err
}
