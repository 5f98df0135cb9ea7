package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Category is one of the fixed prompt taxonomy values.
type Category string

const (
	CategoryCareer             Category = "career"
	CategoryAcademic           Category = "academic"
	CategoryLeadership         Category = "leadership"
	CategoryCommunityService   Category = "community_service"
	CategoryPersonalChallenges Category = "personal_challenges"
	CategoryRoleModel          Category = "role_model"
	CategoryGoals              Category = "goals"
	CategoryValues             Category = "values"
	CategoryCreativity         Category = "creativity"
	CategoryGeneral            Category = "general"
)

// Categories is the closed taxonomy in a stable order.
var Categories = []Category{
	CategoryCareer,
	CategoryAcademic,
	CategoryLeadership,
	CategoryCommunityService,
	CategoryPersonalChallenges,
	CategoryRoleModel,
	CategoryGoals,
	CategoryValues,
	CategoryCreativity,
	CategoryGeneral,
}

// categoryKeywords biases retrieval toward category-relevant passages.
// The keyword list is appended to the essay prompt before embedding.
var categoryKeywords = map[Category]string{
	CategoryCareer:             "career, profession, job, work, internship, industry",
	CategoryAcademic:           "academic, study, school, coursework, research, learning",
	CategoryLeadership:         "leadership, lead, team, organization, president, officer",
	CategoryCommunityService:   "community, service, volunteer, helping, outreach, impact",
	CategoryPersonalChallenges: "challenge, obstacle, adversity, struggle, overcome, resilience",
	CategoryRoleModel:          "role model, mentor, inspiration, influence, admire, example",
	CategoryGoals:              "goal, plan, future, aspiration, ambition, dream",
	CategoryValues:             "values, belief, integrity, principle, character, ethics",
	CategoryCreativity:         "creativity, art, design, invention, original, imagination",
	CategoryGeneral:            "",
}

// ParseCategory validates a raw category value against the closed
// taxonomy, coercing anything unrecognized to general.
func ParseCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryGeneral
}

// Keywords returns the retrieval-expansion keyword list for a category.
func (c Category) Keywords() string {
	return categoryKeywords[c]
}

// ClassificationResult maps a free-text prompt to a taxonomy category.
type ClassificationResult struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// DefaultClassification is returned when classification fails.
// Classification is advisory and must never block the pipeline.
func DefaultClassification() ClassificationResult {
	return ClassificationResult{
		Category:   CategoryGeneral,
		Confidence: 0.5,
		Reasoning:  "default due to error",
	}
}

// ClassificationCacheKey hashes a trimmed, lower-cased prompt so that
// case and surrounding-whitespace variants share one cache entry.
func ClassificationCacheKey(prompt string) string {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
