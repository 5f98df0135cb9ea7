package mocks

import (
	"context"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// MockTaskQueue is a channel-backed TaskQueue for testing
type MockTaskQueue struct {
	tasks chan *domain.IngestTask
}

// NewMockTaskQueue creates a new MockTaskQueue
func NewMockTaskQueue() *MockTaskQueue {
	return &MockTaskQueue{
		tasks: make(chan *domain.IngestTask, 100),
	}
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *domain.IngestTask) error {
	select {
	case m.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockTaskQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.IngestTask, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case task := <-m.tasks:
		return task, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *MockTaskQueue) Len(ctx context.Context) (int, error) {
	return len(m.tasks), nil
}
