package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
)

// maxAttempts bounds retries for a failing ingest task before it is dropped.
const maxAttempts = 3

// Worker processes ingest tasks from the task queue.
// Each task is one document to chunk, embed and index.
type Worker struct {
	taskQueue driven.TaskQueue
	ingestion driving.IngestionService
	documents driving.DocumentService
	logger    *slog.Logger

	// Configuration
	concurrency    int
	dequeueTimeout time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	TaskQueue      driven.TaskQueue
	Ingestion      driving.IngestionService
	Documents      driving.DocumentService
	Logger         *slog.Logger
	Concurrency    int           // Number of concurrent task processors
	DequeueTimeout time.Duration // How long to block waiting for a task
}

// NewWorker creates a new ingest worker.
func NewWorker(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5 * time.Second
	}

	return &Worker{
		taskQueue:      cfg.TaskQueue,
		ingestion:      cfg.Ingestion,
		documents:      cfg.Documents,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	// Wait for workers to finish
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// Running reports whether the worker loop is active.
func (w *Worker) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// processLoop is the main processing loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		// Dequeue a task with timeout
		task, err := w.taskQueue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue task", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if task == nil {
			// No task available, continue
			continue
		}

		w.processTask(ctx, task, logger)
	}
}

// processTask runs one ingest task end to end.
func (w *Worker) processTask(ctx context.Context, task *domain.IngestTask, logger *slog.Logger) {
	logger = logger.With("task_id", task.ID, "document_id", task.DocumentID, "user_id", task.UserID)
	logger.Info("processing ingest task", "attempt", task.Attempts+1)

	startTime := time.Now()

	doc, err := w.documents.Get(ctx, task.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Document deleted between enqueue and processing; nothing to do
			logger.Warn("document gone, dropping task")
			return
		}
		w.retry(ctx, task, err, logger)
		return
	}

	chunkCount, err := w.ingestion.Ingest(ctx, doc)
	duration := time.Since(startTime)

	if err != nil {
		logger.Error("ingest task failed", "duration", duration, "error", err)
		w.retry(ctx, task, err, logger)
		return
	}

	logger.Info("ingest task completed", "duration", duration, "chunks", chunkCount)
}

// retry re-enqueues a failed task until maxAttempts is reached.
// Configuration errors are never retried: they need operator action.
func (w *Worker) retry(ctx context.Context, task *domain.IngestTask, cause error, logger *slog.Logger) {
	if errors.Is(cause, domain.ErrNotConfigured) {
		logger.Error("ingest not configured, dropping task", "error", cause)
		return
	}

	task.Attempts++
	if task.Attempts >= maxAttempts {
		logger.Error("task exceeded max attempts, dropping", "attempts", task.Attempts)
		return
	}

	if err := w.taskQueue.Enqueue(ctx, task); err != nil {
		logger.Error("failed to re-enqueue task", "error", err)
	}
}
