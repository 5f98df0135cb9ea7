package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
	"github.com/scribewell-labs/essay-core/internal/runtime"
)

// Ensure classificationService implements ClassificationService
var _ driving.ClassificationService = (*classificationService)(nil)

// maxClassifyPromptLen bounds the prompt text sent for classification to
// control token cost; essay prompts rarely come close to this.
const maxClassifyPromptLen = 1500

const classifySystemPrompt = `You classify scholarship essay prompts into exactly one category. Respond with valid JSON only, matching this schema:
{"category": "string", "confidence": 0.0, "reasoning": "string"}
The category must be one of the allowed values. Confidence is between 0 and 1. Reasoning is one short sentence.`

const classifyUserPromptFormat = `Allowed categories: %s

Classify this essay prompt:
%s`

// classificationService implements the ClassificationService interface.
// Results are cached keyed by the normalized prompt hash so repeated
// prompts never issue a second model call. Classification is advisory:
// every failure path returns the default result instead of an error.
type classificationService struct {
	services *runtime.Services
	cache    driven.ClassificationCache
	logger   *slog.Logger
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(services *runtime.Services, cache driven.ClassificationCache, logger *slog.Logger) driving.ClassificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &classificationService{
		services: services,
		cache:    cache,
		logger:   logger,
	}
}

// Classify maps a free-text prompt to the fixed taxonomy.
func (s *classificationService) Classify(ctx context.Context, prompt string) domain.ClassificationResult {
	key := domain.ClassificationCacheKey(prompt)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached
	}

	llm := s.services.LLMService()
	if llm == nil {
		s.logger.Warn("classification skipped, no generative provider configured")
		return domain.DefaultClassification()
	}

	reply, err := llm.Complete(ctx, driven.CompletionRequest{
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   fmt.Sprintf(classifyUserPromptFormat, categoryList(), truncatePrompt(prompt, maxClassifyPromptLen)),
		Temperature:  0.1,
		MaxTokens:    200,
	})
	if err != nil {
		s.logger.Warn("classification call failed", "error", err)
		return domain.DefaultClassification()
	}

	result, err := parseClassificationReply(reply)
	if err != nil {
		s.logger.Warn("classification reply unparseable", "error", err)
		return domain.DefaultClassification()
	}

	s.cache.Set(ctx, key, result)
	return result
}

// parseClassificationReply extracts the JSON object from a model reply
// and validates it against the closed taxonomy. Unrecognized categories
// are coerced to general; confidence is clamped to [0, 1].
func parseClassificationReply(reply string) (domain.ClassificationResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return domain.ClassificationResult{}, fmt.Errorf("no JSON object in reply")
	}

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("decode reply: %w", err)
	}

	result := domain.ClassificationResult{
		Category:   domain.ParseCategory(parsed.Category),
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result, nil
}

func categoryList() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func truncatePrompt(prompt string, max int) string {
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max])
}
