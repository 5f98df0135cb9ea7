package mocks

import (
	"context"
	"sync"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// MockProfileStore is a mock implementation of ProfileStore for testing
type MockProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
}

// NewMockProfileStore creates a new MockProfileStore
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		profiles: make(map[string]*domain.Profile),
	}
}

func (m *MockProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (m *MockProfileStore) Save(ctx context.Context, profile *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile
	return nil
}
