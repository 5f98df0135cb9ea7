package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// VectorIndex stores chunk vectors and executes nearest-neighbor queries
// with metadata filters.
type VectorIndex interface {
	// Upsert atomically replaces all chunks belonging to a document
	// (delete-then-insert). Callers must not interleave concurrent
	// upserts for the same document id.
	Upsert(ctx context.Context, documentID string, chunks []*domain.Chunk) error

	// Query returns up to topK chunks for the owner ranked by descending
	// cosine similarity, ties broken by stored chunk index ascending.
	// Filters are evaluated by the index before the limit is applied.
	Query(ctx context.Context, ownerID string, queryVector []float32, filters domain.RetrievalFilters, topK int) ([]*domain.QueryResult, error)

	// DeleteByDocument removes all chunks for a document
	DeleteByDocument(ctx context.Context, documentID string) error

	// HealthCheck verifies the index is available
	HealthCheck(ctx context.Context) error
}
