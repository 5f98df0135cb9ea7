package services

import (
	"fmt"
	"strings"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// Default chunking geometry, in words.
const (
	ChunkWindow  = 200
	ChunkOverlap = 50
)

// Chunker splits raw document text into overlapping fixed-size word
// windows, the unit of retrieval.
type Chunker struct {
	window  int
	overlap int
}

// NewChunker returns a chunker with the default window geometry.
func NewChunker() *Chunker {
	return &Chunker{window: ChunkWindow, overlap: ChunkOverlap}
}

// NewChunkerWithSize returns a chunker with a custom geometry.
// The window must be strictly larger than the overlap or the window
// would never advance.
func NewChunkerWithSize(window, overlap int) (*Chunker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive", domain.ErrInvalidInput)
	}
	if overlap < 0 || overlap >= window {
		return nil, fmt.Errorf("%w: overlap must be in [0, window)", domain.ErrInvalidInput)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Chunk splits text into word windows of up to `window` words, each
// window starting `window-overlap` words after the previous one, joined
// back with single spaces. Indices are assigned in emission order from 0.
//
// Adjacent windows share exactly `overlap` words, the union of windows
// covers every word, and a residual tail shorter than the overlap is
// subsumed into the final window rather than emitted as a near-empty
// chunk. Empty or whitespace-only input yields no chunks; callers are
// expected to detect that and skip ingestion.
func (c *Chunker) Chunk(text string) []domain.ChunkSpan {
	words := strings.Fields(text)
	n := len(words)
	if n == 0 {
		return nil
	}

	var spans []domain.ChunkSpan
	start := 0
	for {
		end := start + c.window
		if end > n {
			end = n
		}
		spans = append(spans, domain.ChunkSpan{
			Index:   len(spans),
			Content: strings.Join(words[start:end], " "),
		})
		if end == n {
			break
		}
		start = end - c.overlap
		if start >= n-c.overlap {
			// The previous window already covers the remaining words.
			break
		}
	}
	return spans
}

// Window returns the configured window size in words.
func (c *Chunker) Window() int { return c.window }

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int { return c.overlap }
