package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven/mocks"
)

type synthesisFixture struct {
	llm       *mocks.MockLLMService
	embedding *mocks.MockEmbeddingService
	index     *mocks.MockVectorIndex
	profiles  *mocks.MockProfileStore
	facts     *mocks.MockFactStore
	svc       *synthesisService
}

// newSynthesisFixture wires the full pipeline over mocks. The LLM script
// is consumed in call order: classification reply first, then the
// generated essay.
func newSynthesisFixture(t *testing.T, llmResponses ...string) *synthesisFixture {
	t.Helper()
	llm := mocks.NewMockLLMService(llmResponses...)
	embedding := mocks.NewMockEmbeddingService()
	index := mocks.NewMockVectorIndex()
	profiles := mocks.NewMockProfileStore()
	facts := mocks.NewMockFactStore()
	services := createTestServices(embedding, llm)

	retrieval := NewRetrievalService(index, services)
	classifier := NewClassificationService(services, mocks.NewMockClassificationCache(), discardLogger())
	svc := NewSynthesisService(retrieval, classifier, profiles, facts, services, 0, discardLogger()).(*synthesisService)

	return &synthesisFixture{
		llm:       llm,
		embedding: embedding,
		index:     index,
		profiles:  profiles,
		facts:     facts,
		svc:       svc,
	}
}

func (f *synthesisFixture) readyProfile(t *testing.T, userID string) {
	t.Helper()
	err := f.profiles.Save(context.Background(), &domain.Profile{
		UserID:     userID,
		Style:      domain.DefaultPersonaStyle(),
		EssayCount: 4,
		Ready:      true,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
}

const classifyLeadershipReply = `{"category": "leadership", "confidence": 0.9, "reasoning": "asks about leading"}`

func TestSynthesis_EndToEnd(t *testing.T) {
	f := newSynthesisFixture(t,
		classifyLeadershipReply,
		"I founded our robotics team [1]. Leading it taught me patience [2].",
	)
	f.readyProfile(t, "user-1")

	indexTestChunks(t, f.index, f.embedding, "user-1", "doc-1", []string{
		"I founded the school robotics team in my sophomore year.",
		"Leading twelve teammates through a losing season taught me patience.",
		"Our food drive collected two tons of donations.",
	}, true)

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Describe a time you showed leadership.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != domain.SynthesisDone {
		t.Fatalf("expected done, got %s", result.Status)
	}
	if result.Category != domain.CategoryLeadership {
		t.Errorf("expected leadership category, got %s", result.Category)
	}
	if len(result.Citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(result.Citations))
	}
	if result.Citations[0].Ref != "[1]" || result.Citations[1].Ref != "[2]" {
		t.Errorf("unexpected citation refs: %s, %s", result.Citations[0].Ref, result.Citations[1].Ref)
	}
	for _, c := range result.Citations {
		for _, src := range c.Sources {
			if src.Title == domain.UnknownSourceTitle {
				t.Errorf("citation %s resolved to Unknown", c.Ref)
			}
		}
	}
	if len(result.Sources) == 0 || len(result.Sources) > 5 {
		t.Errorf("expected 1..5 sources, got %d", len(result.Sources))
	}
	for _, src := range result.Sources {
		if got := len([]rune(src.Excerpt)); got > ExcerptMaxLen {
			t.Errorf("excerpt exceeds %d runes: %d", ExcerptMaxLen, got)
		}
	}
	if result.WordCount != len(strings.Fields(result.Content)) {
		t.Errorf("word count %d does not match content", result.WordCount)
	}
	if result.ShortCircuited {
		t.Error("expected full generation, not a short-circuit")
	}

	// Two model calls: classification, then generation.
	if f.llm.CallCount() != 2 {
		t.Errorf("expected 2 model calls, got %d", f.llm.CallCount())
	}
	gen := f.llm.LastCall()
	if !strings.Contains(gen.UserPrompt, "[1]") {
		t.Error("expected numbered sources in generation prompt")
	}
	if !strings.Contains(gen.UserPrompt, "(from a winning application)") {
		t.Error("expected awarded tag in generation prompt")
	}
}

func TestSynthesis_NoProfile(t *testing.T) {
	f := newSynthesisFixture(t)

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Describe a challenge you overcame.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SynthesisNoProfile {
		t.Fatalf("expected no_profile, got %s", result.Status)
	}
	if result.Content != domain.NoProfileMessage {
		t.Errorf("expected guidance message, got %q", result.Content)
	}
	if f.llm.CallCount() != 0 {
		t.Errorf("expected no model calls, got %d", f.llm.CallCount())
	}
}

func TestSynthesis_ProfileNotReady(t *testing.T) {
	f := newSynthesisFixture(t)
	_ = f.profiles.Save(context.Background(), &domain.Profile{UserID: "user-1", Ready: false})

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Why do you deserve this scholarship?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SynthesisNoProfile {
		t.Errorf("expected no_profile for unready profile, got %s", result.Status)
	}
}

func TestSynthesis_ObviousFieldShortCircuit(t *testing.T) {
	f := newSynthesisFixture(t)
	_ = f.facts.Set(context.Background(), &domain.Fact{UserID: "user-1", Key: domain.FactFullName, Value: "alex rivera"})

	// No profile exists; the short-circuit must win before the profile
	// gate and make no retrieval or model calls.
	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID:     "user-1",
		FieldLabel: "First Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SynthesisDone {
		t.Fatalf("expected done, got %s", result.Status)
	}
	if result.Content != "Alex" {
		t.Errorf("expected Alex, got %q", result.Content)
	}
	if !result.ShortCircuited {
		t.Error("expected short-circuit flag")
	}
	if len(result.Citations) != 0 || result.Citations == nil {
		t.Errorf("expected empty non-nil citations, got %v", result.Citations)
	}
	if result.Style != domain.ShortAnswerStyle() {
		t.Errorf("expected short-answer style, got %+v", result.Style)
	}
	if f.llm.CallCount() != 0 {
		t.Errorf("expected no model calls, got %d", f.llm.CallCount())
	}
	if f.embedding.CallCount() != 0 {
		t.Errorf("expected no embedding calls, got %d", f.embedding.CallCount())
	}
}

func TestSynthesis_FieldWithoutFactFallsThrough(t *testing.T) {
	f := newSynthesisFixture(t,
		`{"category": "general", "confidence": 0.6, "reasoning": "short field"}`,
		"My favorite book is one I return to every year.",
	)
	f.readyProfile(t, "user-1")

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID:     "user-1",
		FieldLabel: "Favorite Book",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SynthesisDone {
		t.Fatalf("expected done, got %s", result.Status)
	}
	if result.ShortCircuited {
		t.Error("expected full generation for a non-obvious field")
	}
}

func TestSynthesis_ZeroKnowledgeStillGenerates(t *testing.T) {
	f := newSynthesisFixture(t,
		classifyLeadershipReply,
		"Leadership, to me, starts with listening.",
	)
	f.readyProfile(t, "user-1")
	// No documents indexed: retrieval returns nothing.

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Describe a time you showed leadership.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SynthesisDone {
		t.Fatalf("expected done, got %s", result.Status)
	}
	if len(result.Citations) != 0 {
		t.Errorf("expected no citations, got %d", len(result.Citations))
	}
	if len(result.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(result.Sources))
	}
	gen := f.llm.LastCall()
	if !strings.Contains(gen.UserPrompt, "no prior essays") {
		t.Error("expected the no-material instruction in the prompt")
	}
}

func TestSynthesis_QuickFactsInPrompt(t *testing.T) {
	f := newSynthesisFixture(t,
		classifyLeadershipReply,
		"Generated essay.",
	)
	f.readyProfile(t, "user-1")
	_ = f.facts.Set(context.Background(), &domain.Fact{UserID: "user-1", Key: domain.FactMajor, Value: "Mechanical Engineering"})

	_, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Describe a time you showed leadership.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gen := f.llm.LastCall()
	if !strings.Contains(gen.UserPrompt, "Mechanical Engineering") {
		t.Error("expected quick facts in the generation prompt")
	}
}

func TestSynthesis_StyleOverridesInPrompt(t *testing.T) {
	f := newSynthesisFixture(t,
		classifyLeadershipReply,
		"Generated essay.",
	)
	f.readyProfile(t, "user-1")

	result, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID:         "user-1",
		Prompt:         "Describe a time you showed leadership.",
		StyleOverrides: &domain.StyleOverrides{Tone: "formal"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Style.Tone != "formal" {
		t.Errorf("expected overridden tone, got %s", result.Style.Tone)
	}
	if !result.Style.OverridesApplied {
		t.Error("expected OverridesApplied")
	}
	if !strings.Contains(f.llm.LastCall().UserPrompt, "tone=formal") {
		t.Error("expected overridden tone in generation prompt")
	}
}

func TestSynthesis_WordLimitInPrompt(t *testing.T) {
	f := newSynthesisFixture(t,
		classifyLeadershipReply,
		"Generated essay.",
	)
	f.readyProfile(t, "user-1")

	_, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID:    "user-1",
		Prompt:    "Describe a time you showed leadership.",
		WordLimit: 250,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gen := f.llm.LastCall()
	if !strings.Contains(gen.UserPrompt, "Word limit: 250") {
		t.Error("expected word limit in generation prompt")
	}
	if gen.MaxTokens != 500 {
		t.Errorf("expected 500 max tokens for a 250-word limit, got %d", gen.MaxTokens)
	}
}

func TestSynthesis_GenerationFailurePropagates(t *testing.T) {
	f := newSynthesisFixture(t, classifyLeadershipReply)
	f.readyProfile(t, "user-1")
	// Classification succeeds, then the generation call fails.
	f.svc.classifier.Classify(context.Background(), "warm the cache")
	f.llm.SetFailNext(true)

	_, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "warm the cache",
	})
	if err == nil {
		t.Fatal("expected an error when generation fails")
	}
}

func TestSynthesis_InputValidation(t *testing.T) {
	f := newSynthesisFixture(t)

	if _, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{Prompt: "p"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing user, got %v", err)
	}
	if _, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{UserID: "user-1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing prompt and field, got %v", err)
	}
}

func TestSynthesis_NoGenerativeProvider(t *testing.T) {
	f := newSynthesisFixture(t)
	f.readyProfile(t, "user-1")
	f.svc.services.SetLLMService(nil)

	_, err := f.svc.Synthesize(context.Background(), domain.SynthesisRequest{
		UserID: "user-1",
		Prompt: "Describe a time you showed leadership.",
	})
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestMaxTokensFor(t *testing.T) {
	cases := []struct {
		wordLimit int
		want      int
	}{
		{0, 1200},
		{50, 200},
		{250, 500},
		{3000, 4000},
	}
	for _, tc := range cases {
		if got := maxTokensFor(tc.wordLimit); got != tc.want {
			t.Errorf("maxTokensFor(%d) = %d, want %d", tc.wordLimit, got, tc.want)
		}
	}
}
