package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// MockFactStore is a mock implementation of FactStore for testing
type MockFactStore struct {
	mu      sync.RWMutex
	facts   map[string]map[string]string // userID -> key -> value
	failAll bool
}

// NewMockFactStore creates a new MockFactStore
func NewMockFactStore() *MockFactStore {
	return &MockFactStore{
		facts: make(map[string]map[string]string),
	}
}

func (m *MockFactStore) Get(ctx context.Context, userID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failAll {
		return "", errors.New("mock fact store failure")
	}
	value, ok := m.facts[userID][key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (m *MockFactStore) List(ctx context.Context, userID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failAll {
		return nil, errors.New("mock fact store failure")
	}
	out := make(map[string]string, len(m.facts[userID]))
	for k, v := range m.facts[userID] {
		out[k] = v
	}
	return out, nil
}

func (m *MockFactStore) Set(ctx context.Context, fact *domain.Fact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("mock fact store failure")
	}
	if m.facts[fact.UserID] == nil {
		m.facts[fact.UserID] = make(map[string]string)
	}
	m.facts[fact.UserID][fact.Key] = fact.Value
	return nil
}

// Helper methods for testing

func (m *MockFactStore) SetFailAll(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = fail
}
