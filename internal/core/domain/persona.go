package domain

import "time"

// PersonaStyle is the tone/voice/complexity/focus profile learned from a
// student's past writing, used to parametrize generation.
type PersonaStyle struct {
	Tone       string `json:"tone"`
	Voice      string `json:"voice"`
	Complexity string `json:"complexity"`
	Focus      string `json:"focus"`
}

// DefaultPersonaStyle is used when no learned baseline exists yet.
func DefaultPersonaStyle() PersonaStyle {
	return PersonaStyle{
		Tone:       "conversational",
		Voice:      "first-person narrative",
		Complexity: "moderate",
		Focus:      "story-driven",
	}
}

// StyleOverrides carries per-request style adjustments. Empty fields fall
// back to the learned baseline. Overrides never persist back into it.
type StyleOverrides struct {
	Tone       string `json:"tone,omitempty"`
	Voice      string `json:"voice,omitempty"`
	Complexity string `json:"complexity,omitempty"`
	Focus      string `json:"focus,omitempty"`
}

// ResolvedStyle is the effective style for one generation request.
// OverridesApplied is true iff an overrides object was supplied at all,
// even when every field happened to equal the baseline.
type ResolvedStyle struct {
	PersonaStyle
	OverridesApplied bool `json:"overrides_applied"`
}

// ShortAnswerStyle marks responses produced by the obvious-field
// short-circuit: a bare factual value, no narrative styling.
func ShortAnswerStyle() ResolvedStyle {
	return ResolvedStyle{
		PersonaStyle: PersonaStyle{
			Tone:       "direct",
			Voice:      "factual",
			Complexity: "minimal",
			Focus:      "exact answer",
		},
	}
}

// Profile is a student's learned writing profile. The learning step is an
// external collaborator; this core only reads the stored baseline and the
// readiness flag.
type Profile struct {
	UserID     string       `json:"user_id"`
	Style      PersonaStyle `json:"style"`
	EssayCount int          `json:"essay_count"`
	Ready      bool         `json:"ready"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
