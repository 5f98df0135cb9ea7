package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// IngestionService turns a document into embedded chunks in the vector
// index, replacing any prior chunks for the same document.
type IngestionService interface {
	// Ingest chunks, embeds and indexes a document synchronously.
	// Returns the number of chunks produced; zero for empty bodies.
	Ingest(ctx context.Context, doc *domain.Document) (int, error)

	// IngestAsync saves the document and enqueues an ingest task for
	// the background worker.
	IngestAsync(ctx context.Context, doc *domain.Document) (*domain.IngestTask, error)
}
