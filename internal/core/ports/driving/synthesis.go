package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// SynthesisService answers essay prompts and form fields on behalf of a
// user: obvious-field short-circuit, classification, retrieval, persona
// resolution, generation and citation extraction in one operation.
type SynthesisService interface {
	// Synthesize runs the full pipeline for one prompt or field.
	// Returns a result with status done or no_profile; hard upstream
	// failures come back as errors wrapping domain.ErrProviderUnavailable.
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.SynthesisResult, error)
}
