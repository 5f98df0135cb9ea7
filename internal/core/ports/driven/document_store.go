package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// DocumentStore persists documents (bodies live here, vectors in the index)
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByUser retrieves documents for a user, newest first
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Document, error)

	// Delete removes a document
	Delete(ctx context.Context, id string) error

	// CountByUser returns the document count for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}
