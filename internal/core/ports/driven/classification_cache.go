package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// ClassificationCache memoizes prompt classifications keyed by the
// normalized prompt hash. Only insertion is required; implementations
// may evict (bounded LRU) or expire (TTL) entries, which at worst costs
// a re-classification.
type ClassificationCache interface {
	// Get returns the cached result and whether it was present
	Get(ctx context.Context, key string) (domain.ClassificationResult, bool)

	// Set stores a validated classification result
	Set(ctx context.Context, key string, result domain.ClassificationResult)
}
