package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
	"github.com/scribewell-labs/essay-core/internal/runtime"
)

// Ensure synthesisService implements SynthesisService
var _ driving.SynthesisService = (*synthesisService)(nil)

// Synthesis pipeline limits.
const (
	maxPromptSources = 7 // sources formatted into the generation prompt
	maxResultSources = 5 // sources returned to the caller
	generationTemp   = 0.7
	defaultMaxTokens = 1200
)

const synthesisSystemPrompt = `You are a scholarship essay writing assistant. You help a student draft an original response in their own voice, grounded in their past writing.

Rules:
- Draw facts, experiences and inspiration from the numbered sources. Never copy their phrasing; everything you write must be original.
- Cite a source whenever you use material from it, with bracket notation: [1] or [2, 3]. Only cite numbers that appear in the source list.
- Use the quick facts verbatim where relevant; never invent personal details.
- Respect the word limit when one is given.
- Write in the requested tone, voice, complexity and focus.`

const noMaterialInstruction = `The student has no prior essays to draw on. Do not cite any sources and do not invent past experiences; write a strong, honest response using only the quick facts and the prompt itself.`

// synthesisService sequences classification, retrieval, persona
// resolution, generation and citation extraction into one operation.
type synthesisService struct {
	retrieval    driving.RetrievalService
	classifier   driving.ClassificationService
	profiles     driven.ProfileStore
	facts        driven.FactStore
	services     *runtime.Services
	citations    *CitationProcessor
	minRelevance float64
	logger       *slog.Logger
}

// NewSynthesisService creates a new SynthesisService.
// minRelevance is the cosine similarity floor applied during retrieval;
// zero disables the floor.
func NewSynthesisService(
	retrieval driving.RetrievalService,
	classifier driving.ClassificationService,
	profiles driven.ProfileStore,
	facts driven.FactStore,
	services *runtime.Services,
	minRelevance float64,
	logger *slog.Logger,
) driving.SynthesisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &synthesisService{
		retrieval:    retrieval,
		classifier:   classifier,
		profiles:     profiles,
		facts:        facts,
		services:     services,
		citations:    NewCitationProcessor(),
		minRelevance: minRelevance,
		logger:       logger,
	}
}

// Synthesize runs the full pipeline for one prompt or field.
func (s *synthesisService) Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.SynthesisResult, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if req.Prompt == "" && req.FieldLabel == "" {
		return nil, fmt.Errorf("%w: prompt or field label required", domain.ErrInvalidInput)
	}

	facts, err := s.facts.List(ctx, req.UserID)
	if err != nil {
		// Facts are an optimization; a store failure only disables the
		// short-circuit and the quick-facts prompt block.
		s.logger.Warn("fact lookup failed", "user_id", req.UserID, "error", err)
		facts = nil
	}

	// Obvious-field short-circuit: answer well-known factual fields from
	// confirmed values. No classification, retrieval or model call
	// happens on this path.
	if req.FieldLabel != "" {
		if value, ok := ResolveObviousField(req.FieldLabel, facts); ok {
			return &domain.SynthesisResult{
				Status:         domain.SynthesisDone,
				Content:        value,
				Citations:      []domain.Citation{},
				Sources:        []domain.SourceSummary{},
				Category:       domain.CategoryGeneral,
				WordCount:      len(strings.Fields(value)),
				Style:          domain.ShortAnswerStyle(),
				ShortCircuited: true,
			}, nil
		}
	}

	profile, err := s.profiles.Get(ctx, req.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil || !profile.Ready {
		return &domain.SynthesisResult{
			Status:    domain.SynthesisNoProfile,
			Content:   domain.NoProfileMessage,
			Citations: []domain.Citation{},
			Sources:   []domain.SourceSummary{},
			Category:  domain.CategoryGeneral,
		}, nil
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = req.FieldLabel
	}

	classification := s.classifier.Classify(ctx, prompt)

	// Bias retrieval toward category-relevant passages by appending the
	// category's keyword list to the search query.
	query := prompt
	if keywords := classification.Category.Keywords(); keywords != "" {
		query = prompt + "\n" + keywords
	}

	retrieved, err := s.retrieval.Retrieve(ctx, req.UserID, query, domain.RetrievalFilters{MinRelevance: s.minRelevance}, DefaultTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve sources: %w", err)
	}

	style := ResolveStyle(&profile.Style, req.StyleOverrides)

	llm := s.services.LLMService()
	if llm == nil {
		return nil, fmt.Errorf("%w: no generative provider", domain.ErrNotConfigured)
	}

	// The prompt and the citation resolution below must share the same
	// re-numbered source list, or citation numbers would mismatch.
	promptSources := retrieved
	if len(promptSources) > maxPromptSources {
		promptSources = promptSources[:maxPromptSources]
	}

	generated, err := llm.Complete(ctx, driven.CompletionRequest{
		SystemPrompt: synthesisSystemPrompt,
		UserPrompt:   buildUserPrompt(prompt, req.FieldLabel, req.WordLimit, promptSources, facts, style),
		Temperature:  generationTemp,
		MaxTokens:    maxTokensFor(req.WordLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	content, citations := s.citations.Extract(generated, promptSources)

	sources := make([]domain.SourceSummary, 0, maxResultSources)
	for _, src := range retrieved {
		if len(sources) == maxResultSources {
			break
		}
		sources = append(sources, SummarizeSource(src))
	}

	s.logger.Info("synthesis complete",
		"user_id", req.UserID,
		"category", classification.Category,
		"sources", len(retrieved),
		"citations", len(citations),
	)

	return &domain.SynthesisResult{
		Status:    domain.SynthesisDone,
		Content:   content,
		Citations: citations,
		Sources:   sources,
		Category:  classification.Category,
		WordCount: len(strings.Fields(content)),
		Style:     style,
	}, nil
}

// buildUserPrompt assembles the generation prompt: numbered sources (or
// the no-material instruction), quick facts, style directives and the
// target prompt or field.
func buildUserPrompt(prompt, fieldLabel string, wordLimit int, sources []*domain.QueryResult, facts map[string]string, style domain.ResolvedStyle) string {
	var b strings.Builder

	if len(sources) == 0 {
		b.WriteString(noMaterialInstruction)
		b.WriteString("\n\n")
	} else {
		b.WriteString("Sources from the student's past essays:\n")
		for _, src := range sources {
			fmt.Fprintf(&b, "[%d] %s", src.DisplayID, src.Chunk.Metadata.Title)
			if src.Chunk.Metadata.Awarded {
				b.WriteString(" (from a winning application)")
			}
			b.WriteString("\n")
			b.WriteString(src.Chunk.Content)
			b.WriteString("\n\n")
		}
	}

	if len(facts) > 0 {
		b.WriteString("Quick facts about the student:\n")
		for _, key := range sortedKeys(facts) {
			fmt.Fprintf(&b, "- %s: %s\n", key, facts[key])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Style: tone=%s, voice=%s, complexity=%s, focus=%s\n", style.Tone, style.Voice, style.Complexity, style.Focus)
	if wordLimit > 0 {
		fmt.Fprintf(&b, "Word limit: %d\n", wordLimit)
	}
	if fieldLabel != "" {
		fmt.Fprintf(&b, "Application field: %s\n", fieldLabel)
	}
	fmt.Fprintf(&b, "\nWrite the student's response to:\n%s\n", prompt)

	return b.String()
}

// maxTokensFor sizes the completion budget from the word limit, with
// headroom for citations and punctuation.
func maxTokensFor(wordLimit int) int {
	if wordLimit <= 0 {
		return defaultMaxTokens
	}
	tokens := wordLimit * 2
	if tokens < 200 {
		tokens = 200
	}
	if tokens > 4000 {
		tokens = 4000
	}
	return tokens
}

// sortedKeys keeps the quick-facts block deterministic across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
