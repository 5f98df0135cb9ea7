package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPersonaStyle(t *testing.T) {
	style := DefaultPersonaStyle()

	assert.Equal(t, "conversational", style.Tone)
	assert.Equal(t, "first-person narrative", style.Voice)
	assert.Equal(t, "moderate", style.Complexity)
	assert.Equal(t, "story-driven", style.Focus)
}

func TestShortAnswerStyle(t *testing.T) {
	style := ShortAnswerStyle()

	assert.Equal(t, "factual", style.Voice)
	assert.False(t, style.OverridesApplied)
}

func TestUnknownSource(t *testing.T) {
	source := UnknownSource(7)

	assert.Equal(t, 7, source.DisplayID)
	assert.Equal(t, UnknownSourceTitle, source.Title)
	assert.Empty(t, source.Excerpt)
	assert.False(t, source.Awarded)
}
