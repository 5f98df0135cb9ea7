package mocks

import (
	"context"
	"errors"

	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// MockLLMService is a mock implementation of LLMService for testing.
// Responses are scripted in order; when the script runs out the last
// response repeats.
type MockLLMService struct {
	model     string
	responses []string
	failNext  bool
	calls     []driven.CompletionRequest
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService(responses ...string) *MockLLMService {
	return &MockLLMService{
		model:     "mock-llm-model",
		responses: responses,
	}
}

func (m *MockLLMService) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	m.calls = append(m.calls, req)
	if m.failNext {
		m.failNext = false
		return "", errors.New("mock llm failure")
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	idx := len(m.calls) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func (m *MockLLMService) Model() string {
	return m.model
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockLLMService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockLLMService) CallCount() int {
	return len(m.calls)
}

func (m *MockLLMService) Calls() []driven.CompletionRequest {
	return m.calls
}

func (m *MockLLMService) LastCall() *driven.CompletionRequest {
	if len(m.calls) == 0 {
		return nil
	}
	return &m.calls[len(m.calls)-1]
}
