package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// ExcerptMaxLen caps the length of source excerpts surfaced in results.
const ExcerptMaxLen = 150

// citationPattern matches bracket groups of one or more comma-separated
// numbers, e.g. [2] or [1, 3].
var citationPattern = regexp.MustCompile(`\[(\d+(?:\s*,\s*\d+)*)\]`)

// CitationProcessor parses bracketed citation markers out of generated
// text and reconciles them against the retrieved sources.
type CitationProcessor struct{}

// NewCitationProcessor creates a CitationProcessor.
func NewCitationProcessor() *CitationProcessor {
	return &CitationProcessor{}
}

// Extract scans generated text for citation bracket groups in order of
// appearance and resolves each referenced display id against the
// retrieved sources. Duplicate bracket groups each produce their own
// entry. Ids with no matching source resolve to an Unknown placeholder
// rather than failing. The text itself is returned unmodified.
func (p *CitationProcessor) Extract(generated string, sources []*domain.QueryResult) (string, []domain.Citation) {
	byDisplayID := make(map[int]*domain.QueryResult, len(sources))
	for _, src := range sources {
		byDisplayID[src.DisplayID] = src
	}

	citations := []domain.Citation{}
	for _, match := range citationPattern.FindAllStringSubmatch(generated, -1) {
		citation := domain.Citation{Ref: match[0]}
		for _, raw := range strings.Split(match[1], ",") {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				continue
			}
			citation.SourceIDs = append(citation.SourceIDs, id)
			if src, ok := byDisplayID[id]; ok {
				citation.Sources = append(citation.Sources, SummarizeSource(src))
			} else {
				citation.Sources = append(citation.Sources, domain.UnknownSource(id))
			}
		}
		citations = append(citations, citation)
	}
	return generated, citations
}

// SummarizeSource produces the citation-facing view of a retrieved chunk.
func SummarizeSource(src *domain.QueryResult) domain.SourceSummary {
	return domain.SourceSummary{
		DisplayID: src.DisplayID,
		Title:     src.Chunk.Metadata.Title,
		Excerpt:   truncateExcerpt(src.Chunk.Content, ExcerptMaxLen),
		Awarded:   src.Chunk.Metadata.Awarded,
	}
}

// truncateExcerpt shortens content to at most max characters, ending
// with an ellipsis when cut.
func truncateExcerpt(content string, max int) string {
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	return string(runes[:max-3]) + "..."
}
