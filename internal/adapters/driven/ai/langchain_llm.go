package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Ensure LangchainLLM implements LLMService
var _ driven.LLMService = (*LangchainLLM)(nil)

// LangchainLLM implements LLMService over a langchaingo model, so one
// adapter covers every provider langchaingo speaks.
type LangchainLLM struct {
	llm   llms.Model
	model string
}

// NewOpenAILLM creates a generative model service backed by OpenAI
func NewOpenAILLM(apiKey, model, baseURL string) (driven.LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", domain.ErrNotConfigured)
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize openai: %w", err)
	}
	return &LangchainLLM{llm: llm, model: model}, nil
}

// NewOllamaLLM creates a generative model service backed by a local
// Ollama server
func NewOllamaLLM(baseURL, model string) (driven.LLMService, error) {
	if model == "" {
		model = "llama3"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("initialize ollama: %w", err)
	}
	return &LangchainLLM{llm: llm, model: model}, nil
}

// Complete generates text for the given prompts
func (l *LangchainLLM) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, req.UserPrompt),
	}

	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := l.llm.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrProviderUnavailable)
	}
	return resp.Choices[0].Content, nil
}

// Model returns the model name being used
func (l *LangchainLLM) Model() string {
	return l.model
}

// Ping verifies the LLM service is available
func (l *LangchainLLM) Ping(ctx context.Context) error {
	_, err := l.Complete(ctx, driven.CompletionRequest{
		SystemPrompt: "Reply with the single word: ok",
		UserPrompt:   "ping",
		MaxTokens:    5,
	})
	return err
}

// Close releases resources held by the LLM service
func (l *LangchainLLM) Close() error {
	return nil
}
