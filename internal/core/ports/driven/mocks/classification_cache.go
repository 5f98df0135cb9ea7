package mocks

import (
	"context"
	"sync"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// MockClassificationCache is an unbounded in-memory cache for testing
type MockClassificationCache struct {
	mu      sync.RWMutex
	entries map[string]domain.ClassificationResult
}

// NewMockClassificationCache creates a new MockClassificationCache
func NewMockClassificationCache() *MockClassificationCache {
	return &MockClassificationCache{
		entries: make(map[string]domain.ClassificationResult),
	}
}

func (m *MockClassificationCache) Get(ctx context.Context, key string) (domain.ClassificationResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.entries[key]
	return result, ok
}

func (m *MockClassificationCache) Set(ctx context.Context, key string, result domain.ClassificationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = result
}

// Helper methods for testing

func (m *MockClassificationCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
