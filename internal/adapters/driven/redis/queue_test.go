package redis

import (
	"context"
	"testing"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

func TestTaskQueue_FIFO(t *testing.T) {
	client, _ := setupTestRedis(t)
	queue := NewTaskQueue(client)
	ctx := context.Background()

	for _, id := range []string{"task-1", "task-2", "task-3"} {
		err := queue.Enqueue(ctx, &domain.IngestTask{
			ID:         id,
			UserID:     "user-1",
			DocumentID: "doc-" + id,
			EnqueuedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	pending, err := queue.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if pending != 3 {
		t.Errorf("expected 3 pending tasks, got %d", pending)
	}

	for _, want := range []string{"task-1", "task-2", "task-3"} {
		task, err := queue.Dequeue(ctx, time.Second)
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if task == nil {
			t.Fatal("expected a task")
		}
		if task.ID != want {
			t.Errorf("expected %s, got %s", want, task.ID)
		}
	}
}

func TestTaskQueue_TimeoutReturnsNil(t *testing.T) {
	client, _ := setupTestRedis(t)
	queue := NewTaskQueue(client)

	task, err := queue.Dequeue(context.Background(), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil on timeout, got %+v", task)
	}
}
