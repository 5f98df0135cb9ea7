package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ClassificationCache = (*LRUClassificationCache)(nil)

// DefaultCapacity bounds the in-process classification cache. Eviction
// at worst costs one re-classification, so a modest cap is plenty.
const DefaultCapacity = 1024

// LRUClassificationCache implements driven.ClassificationCache with a
// bounded in-process LRU. Used when no Redis deployment is configured;
// each instance then keeps its own cache.
type LRUClassificationCache struct {
	entries *lru.Cache[string, domain.ClassificationResult]
}

// NewLRUClassificationCache creates a bounded classification cache.
// A non-positive capacity falls back to the default.
func NewLRUClassificationCache(capacity int) (*LRUClassificationCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New[string, domain.ClassificationResult](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUClassificationCache{entries: entries}, nil
}

// Get returns the cached result and whether it was present
func (c *LRUClassificationCache) Get(ctx context.Context, key string) (domain.ClassificationResult, bool) {
	return c.entries.Get(key)
}

// Set stores a validated classification result
func (c *LRUClassificationCache) Set(ctx context.Context, key string, result domain.ClassificationResult) {
	c.entries.Add(key, result)
}

// Len returns the number of cached entries
func (c *LRUClassificationCache) Len() int {
	return c.entries.Len()
}
