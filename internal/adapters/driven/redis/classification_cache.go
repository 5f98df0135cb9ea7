package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ClassificationCache = (*ClassificationCache)(nil)

const classificationPrefix = "essaycore:classify:"

// DefaultClassificationTTL bounds how long a cached classification
// survives. Prompts are classified against a fixed taxonomy, so stale
// entries are harmless; the TTL only caps memory.
const DefaultClassificationTTL = 7 * 24 * time.Hour

// ClassificationCache implements driven.ClassificationCache using Redis
// with TTL expiry, shared across instances.
type ClassificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClassificationCache creates a new Redis-backed ClassificationCache.
// A non-positive ttl falls back to the default.
func NewClassificationCache(client *redis.Client, ttl time.Duration) *ClassificationCache {
	if ttl <= 0 {
		ttl = DefaultClassificationTTL
	}
	return &ClassificationCache{client: client, ttl: ttl}
}

// Get returns the cached result and whether it was present.
// Redis failures degrade to a cache miss.
func (c *ClassificationCache) Get(ctx context.Context, key string) (domain.ClassificationResult, bool) {
	data, err := c.client.Get(ctx, classificationPrefix+key).Bytes()
	if err != nil {
		return domain.ClassificationResult{}, false
	}
	var result domain.ClassificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.ClassificationResult{}, false
	}
	return result, true
}

// Set stores a validated classification result. Failures are ignored;
// the worst case is a re-classification later.
func (c *ClassificationCache) Set(ctx context.Context, key string, result domain.ClassificationResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, classificationPrefix+key, data, c.ttl).Err()
}
