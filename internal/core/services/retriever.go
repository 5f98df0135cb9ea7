package services

import (
	"context"
	"fmt"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
	"github.com/scribewell-labs/essay-core/internal/runtime"
)

// Ensure retrievalService implements RetrievalService
var _ driving.RetrievalService = (*retrievalService)(nil)

// Retrieval limits.
const (
	DefaultTopK = 10
	maxTopK     = 50
)

// retrievalService implements the RetrievalService interface
type retrievalService struct {
	index    driven.VectorIndex
	services *runtime.Services // dynamic AI services
}

// NewRetrievalService creates a new RetrievalService.
// The embedding provider is accessed dynamically via runtime.Services.
func NewRetrievalService(index driven.VectorIndex, services *runtime.Services) driving.RetrievalService {
	return &retrievalService{
		index:    index,
		services: services,
	}
}

// Retrieve embeds the query, runs the nearest-neighbor search and
// re-numbers the ranked results 1..K. The query-local display ids
// intentionally discard the chunks' storage-time numbering so citation
// numbers in any single response are contiguous starting at 1,
// regardless of how many chunks the owner has in total. An empty result
// list is a valid outcome meaning "nothing to reference", not an error.
func (s *retrievalService) Retrieve(ctx context.Context, userID, query string, filters domain.RetrievalFilters, topK int) ([]*domain.QueryResult, error) {
	if userID == "" || query == "" {
		return nil, domain.ErrInvalidInput
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return nil, fmt.Errorf("%w: no embedding provider", domain.ErrNotConfigured)
	}

	queryVector, err := embeddingService.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.index.Query(ctx, userID, queryVector, filters, topK)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	for i, r := range results {
		r.DisplayID = i + 1
	}
	return results, nil
}
