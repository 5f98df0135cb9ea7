package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
	"github.com/scribewell-labs/essay-core/internal/runtime"
)

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// ingestLockTTL bounds how long a per-document ingest lock can be held,
// so a crashed worker cannot wedge a document forever.
const ingestLockTTL = 2 * time.Minute

// ingestionService chunks, embeds and indexes documents. All chunks of
// a document are replaced on every ingest (delete-then-insert in the
// index), serialized per document by a distributed lock.
type ingestionService struct {
	chunker   *Chunker
	index     driven.VectorIndex
	documents driven.DocumentStore
	queue     driven.TaskQueue
	lock      driven.DistributedLock
	services  *runtime.Services
	logger    *slog.Logger
}

// NewIngestionService creates a new IngestionService. The queue may be
// nil when async ingestion is not deployed.
func NewIngestionService(
	chunker *Chunker,
	index driven.VectorIndex,
	documents driven.DocumentStore,
	queue driven.TaskQueue,
	lock driven.DistributedLock,
	services *runtime.Services,
	logger *slog.Logger,
) driving.IngestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestionService{
		chunker:   chunker,
		index:     index,
		documents: documents,
		queue:     queue,
		lock:      lock,
		services:  services,
		logger:    logger,
	}
}

// Ingest chunks, embeds and indexes a document synchronously.
func (s *ingestionService) Ingest(ctx context.Context, doc *domain.Document) (int, error) {
	if err := s.prepare(doc); err != nil {
		return 0, err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}

	spans := s.chunker.Chunk(doc.Body)
	if len(spans) == 0 {
		s.logger.Warn("document has no content, skipping ingestion", "document_id", doc.ID)
		return 0, nil
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return 0, fmt.Errorf("%w: no embedding provider", domain.ErrNotConfigured)
	}

	texts := make([]string, len(spans))
	for i, span := range spans {
		texts[i] = span.Content
	}
	vectors, err := embeddingService.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(spans) {
		return 0, fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrProviderUnavailable, len(spans), len(vectors))
	}

	dims := embeddingService.Dimensions()
	metadata := domain.ChunkMetadata{
		Title:       doc.Title,
		Awarded:     doc.Awarded,
		WrittenAt:   doc.WrittenAt,
		TotalChunks: len(spans),
		WordCount:   len(strings.Fields(doc.Body)),
	}

	chunks := make([]*domain.Chunk, len(spans))
	now := time.Now()
	for i, span := range spans {
		if len(vectors[i]) != dims {
			return 0, fmt.Errorf("%w: chunk %d has %d dimensions, index expects %d", domain.ErrDimensionMismatch, i, len(vectors[i]), dims)
		}
		chunks[i] = &domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			UserID:     doc.UserID,
			ChunkIndex: span.Index,
			Content:    span.Content,
			Embedding:  vectors[i],
			DisplayID:  span.Index + 1,
			Metadata:   metadata,
			CreatedAt:  now,
		}
	}

	// Delete-then-insert is unsafe to interleave for one document;
	// serialize upserts across instances.
	acquired, err := s.lock.Acquire(ctx, "ingest:"+doc.ID, ingestLockTTL)
	if err != nil {
		return 0, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !acquired {
		return 0, fmt.Errorf("%w: document %s", domain.ErrIngestInProgress, doc.ID)
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), "ingest:"+doc.ID); err != nil {
			s.logger.Warn("release ingest lock failed", "document_id", doc.ID, "error", err)
		}
	}()

	if err := s.index.Upsert(ctx, doc.ID, chunks); err != nil {
		return 0, fmt.Errorf("index chunks: %w", err)
	}

	s.logger.Info("document ingested", "document_id", doc.ID, "user_id", doc.UserID, "chunks", len(chunks))
	return len(chunks), nil
}

// IngestAsync saves the document and enqueues an ingest task for the
// background worker.
func (s *ingestionService) IngestAsync(ctx context.Context, doc *domain.Document) (*domain.IngestTask, error) {
	if s.queue == nil {
		return nil, fmt.Errorf("%w: no task queue", domain.ErrNotConfigured)
	}
	if err := s.prepare(doc); err != nil {
		return nil, err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	task := &domain.IngestTask{
		ID:         uuid.NewString(),
		UserID:     doc.UserID,
		DocumentID: doc.ID,
		EnqueuedAt: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return nil, fmt.Errorf("enqueue ingest task: %w", err)
	}
	return task, nil
}

// prepare validates a document and assigns identifiers and timestamps.
func (s *ingestionService) prepare(doc *domain.Document) error {
	if doc == nil || doc.UserID == "" {
		return fmt.Errorf("%w: document owner required", domain.ErrInvalidInput)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return nil
}
