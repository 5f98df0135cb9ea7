package services

import "github.com/scribewell-labs/essay-core/internal/core/domain"

// ResolveStyle merges a learned style baseline with optional per-request
// overrides. Each dimension uses the override value when present and
// non-empty, else the baseline's learned value; a nil baseline falls
// back to the fixed defaults. OverridesApplied reports whether an
// overrides object was supplied at all, even if every field happened to
// equal the baseline - overrides never persist back into the baseline.
func ResolveStyle(baseline *domain.PersonaStyle, overrides *domain.StyleOverrides) domain.ResolvedStyle {
	style := domain.DefaultPersonaStyle()
	if baseline != nil {
		style = *baseline
	}

	resolved := domain.ResolvedStyle{PersonaStyle: style}
	if overrides == nil {
		return resolved
	}

	resolved.OverridesApplied = true
	if overrides.Tone != "" {
		resolved.Tone = overrides.Tone
	}
	if overrides.Voice != "" {
		resolved.Voice = overrides.Voice
	}
	if overrides.Complexity != "" {
		resolved.Complexity = overrides.Complexity
	}
	if overrides.Focus != "" {
		resolved.Focus = overrides.Focus
	}
	return resolved
}
