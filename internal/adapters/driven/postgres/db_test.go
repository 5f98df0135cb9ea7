package postgres

import (
	"strconv"
	"strings"
	"testing"
)

func TestRenderSchema(t *testing.T) {
	rendered := renderSchema(1536)

	if !strings.Contains(rendered, "embedding   vector(1536) NOT NULL") {
		t.Error("expected the chunk column to declare vector(1536)")
	}
	if strings.Contains(rendered, embeddingDimToken) {
		t.Error("expected every dimension token to be substituted")
	}
	// A formatting mishap would leave a missing-verb artifact behind
	if strings.Contains(rendered, "%!") {
		t.Error("rendered schema contains a formatting artifact")
	}
}

func TestRenderSchema_DimensionVariants(t *testing.T) {
	for _, dim := range []int{384, 768, 3072} {
		rendered := renderSchema(dim)
		if strings.Count(rendered, "vector(") != 1 {
			t.Errorf("expected exactly one vector column for dim %d", dim)
		}
		if !strings.Contains(rendered, "vector("+strconv.Itoa(dim)+")") {
			t.Errorf("expected vector(%d) in rendered schema", dim)
		}
	}
}
