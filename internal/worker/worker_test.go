package worker

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven/mocks"
)

// mockIngestion counts Ingest calls and returns a scripted error
type mockIngestion struct {
	mu      sync.Mutex
	calls   int
	err     error
	ingests chan string
}

func newMockIngestion() *mockIngestion {
	return &mockIngestion{ingests: make(chan string, 100)}
}

func (m *mockIngestion) Ingest(ctx context.Context, doc *domain.Document) (int, error) {
	m.mu.Lock()
	m.calls++
	err := m.err
	m.mu.Unlock()
	m.ingests <- doc.ID
	if err != nil {
		return 0, err
	}
	return 2, nil
}

func (m *mockIngestion) IngestAsync(ctx context.Context, doc *domain.Document) (*domain.IngestTask, error) {
	return nil, domain.ErrNotConfigured
}

func (m *mockIngestion) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockDocuments serves a fixed set of documents
type mockDocuments struct {
	docs map[string]*domain.Document
}

func (m *mockDocuments) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockDocuments) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Document, error) {
	return nil, nil
}

func (m *mockDocuments) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestWorker(queue *mocks.MockTaskQueue, ingestion *mockIngestion, docs *mockDocuments) *Worker {
	return NewWorker(Config{
		TaskQueue:      queue,
		Ingestion:      ingestion,
		Documents:      docs,
		Logger:         discardLogger(),
		Concurrency:    1,
		DequeueTimeout: 50 * time.Millisecond,
	})
}

func waitForIngest(t *testing.T, ingestion *mockIngestion) string {
	t.Helper()
	select {
	case docID := <-ingestion.ingests:
		return docID
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ingest")
		return ""
	}
}

func TestWorker_ProcessesTask(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingestion := newMockIngestion()
	docs := &mockDocuments{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", UserID: "user-1", Title: "Essay", Body: "some words"},
	}}

	w := newTestWorker(queue, ingestion, docs)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	err := queue.Enqueue(context.Background(), &domain.IngestTask{
		ID:         "task-1",
		UserID:     "user-1",
		DocumentID: "doc-1",
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if docID := waitForIngest(t, ingestion); docID != "doc-1" {
		t.Errorf("expected doc-1 to be ingested, got %s", docID)
	}
}

func TestWorker_DocumentGoneDropsTask(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingestion := newMockIngestion()
	docs := &mockDocuments{docs: map[string]*domain.Document{}}

	w := newTestWorker(queue, ingestion, docs)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	_ = queue.Enqueue(context.Background(), &domain.IngestTask{
		ID:         "task-1",
		DocumentID: "missing",
	})

	// Give the loop time to consume and drop the task
	time.Sleep(200 * time.Millisecond)
	w.Stop()

	if ingestion.Calls() != 0 {
		t.Errorf("expected no ingest calls for a missing document, got %d", ingestion.Calls())
	}
	if n, _ := queue.Len(context.Background()); n != 0 {
		t.Errorf("expected task to be dropped, %d still queued", n)
	}
}

func TestWorker_RetriesThenDrops(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingestion := newMockIngestion()
	ingestion.err = domain.ErrProviderUnavailable
	docs := &mockDocuments{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", UserID: "user-1", Body: "words"},
	}}

	w := newTestWorker(queue, ingestion, docs)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	_ = queue.Enqueue(context.Background(), &domain.IngestTask{
		ID:         "task-1",
		DocumentID: "doc-1",
	})

	// Three attempts total, then the task is dropped
	for i := 0; i < maxAttempts; i++ {
		waitForIngest(t, ingestion)
	}
	time.Sleep(200 * time.Millisecond)
	w.Stop()

	if ingestion.Calls() != maxAttempts {
		t.Errorf("expected %d attempts, got %d", maxAttempts, ingestion.Calls())
	}
	if n, _ := queue.Len(context.Background()); n != 0 {
		t.Errorf("expected exhausted task to be dropped, %d still queued", n)
	}
}

func TestWorker_NotConfiguredNeverRetried(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingestion := newMockIngestion()
	ingestion.err = domain.ErrNotConfigured
	docs := &mockDocuments{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", UserID: "user-1", Body: "words"},
	}}

	w := newTestWorker(queue, ingestion, docs)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	_ = queue.Enqueue(context.Background(), &domain.IngestTask{
		ID:         "task-1",
		DocumentID: "doc-1",
	})

	waitForIngest(t, ingestion)
	time.Sleep(200 * time.Millisecond)
	w.Stop()

	if ingestion.Calls() != 1 {
		t.Errorf("expected a single attempt for a configuration error, got %d", ingestion.Calls())
	}
}

func TestWorker_StartStop(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	w := newTestWorker(queue, newMockIngestion(), &mockDocuments{})

	if w.Running() {
		t.Error("expected worker to be stopped before Start")
	}

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !w.Running() {
		t.Error("expected worker to be running after Start")
	}

	// Start is idempotent while running
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("second start: %v", err)
	}

	w.Stop()
	if w.Running() {
		t.Error("expected worker to be stopped after Stop")
	}

	// Stop is idempotent
	w.Stop()
}
