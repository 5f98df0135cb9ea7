package driven

import (
	"context"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// TaskQueue carries ingest tasks from the API to the background worker.
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(ctx context.Context, task *domain.IngestTask) error

	// Dequeue blocks up to timeout for the next task.
	// Returns nil, nil when the timeout elapses with no task.
	Dequeue(ctx context.Context, timeout time.Duration) (*domain.IngestTask, error)

	// Len returns the number of pending tasks
	Len(ctx context.Context) (int, error)
}
