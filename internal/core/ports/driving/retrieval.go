package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// RetrievalService finds the user's most relevant past-essay chunks for
// a query and numbers them for citation display.
type RetrievalService interface {
	// Retrieve embeds the query, searches the vector index and
	// re-numbers results 1..K in rank order. An empty result list is a
	// valid outcome, not an error.
	Retrieve(ctx context.Context, userID, query string, filters domain.RetrievalFilters, topK int) ([]*domain.QueryResult, error)
}
