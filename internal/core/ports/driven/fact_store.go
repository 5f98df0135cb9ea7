package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// FactStore holds verified key/value facts per user. Writes happen in an
// external confirmation flow; this core mostly reads.
type FactStore interface {
	// Get retrieves one fact value; domain.ErrNotFound when absent
	Get(ctx context.Context, userID, key string) (string, error)

	// List retrieves all facts for a user keyed by fact key
	List(ctx context.Context, userID string) (map[string]string, error)

	// Set stores a confirmed fact
	Set(ctx context.Context, fact *domain.Fact) error
}
