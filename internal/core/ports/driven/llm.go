package driven

import (
	"context"
)

// CompletionRequest is one call to the generative model provider.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// LLMService provides generative model completions for classification
// and synthesis. No retry policy is imposed here; callers treat failures
// as request-fatal unless they have a fallback.
type LLMService interface {
	// Complete generates text for the given prompts
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
