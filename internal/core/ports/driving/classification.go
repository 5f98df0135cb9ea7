package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// ClassificationService maps a free-text prompt to the fixed category
// taxonomy. Classification is advisory: it degrades to a default result
// instead of failing.
type ClassificationService interface {
	// Classify returns the category for a prompt, from cache when possible
	Classify(ctx context.Context, prompt string) domain.ClassificationResult
}
