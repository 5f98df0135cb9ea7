package domain

// SynthesisStatus is a terminal state of the synthesis pipeline.
// Hard failures are returned as errors rather than a status value.
type SynthesisStatus string

const (
	// SynthesisDone means content was produced, either by full
	// generation or by the obvious-field short-circuit.
	SynthesisDone SynthesisStatus = "done"

	// SynthesisNoProfile means the user has no ready writing profile
	// and the field could not be answered from confirmed facts.
	SynthesisNoProfile SynthesisStatus = "no_profile"
)

// NoProfileMessage is the user-facing response for the no_profile state:
// soft and actionable, distinct from upstream-failure errors.
const NoProfileMessage = "We haven't learned your writing style yet. Upload a few of your past essays first."

// SynthesisRequest asks for a drafted answer to one essay prompt or form
// field on behalf of a user.
type SynthesisRequest struct {
	UserID         string          `json:"user_id"`
	Prompt         string          `json:"prompt"`
	FieldLabel     string          `json:"field_label,omitempty"`
	WordLimit      int             `json:"word_limit,omitempty"`
	StyleOverrides *StyleOverrides `json:"style_overrides,omitempty"`
}

// SynthesisResult is the structured output of one synthesis run.
type SynthesisResult struct {
	Status         SynthesisStatus `json:"status"`
	Content        string          `json:"content"`
	Citations      []Citation      `json:"citations"`
	Sources        []SourceSummary `json:"sources"` // at most 5, excerpts truncated
	Category       Category        `json:"category"`
	WordCount      int             `json:"word_count"`
	Style          ResolvedStyle   `json:"style"`
	ShortCircuited bool            `json:"short_circuited"` // answered from confirmed facts
}
