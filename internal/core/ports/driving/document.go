package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// DocumentService provides read access to stored documents.
type DocumentService interface {
	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByUser retrieves documents for a user, newest first
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Document, error)

	// CountByUser returns the document count for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}
