package mocks

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// MockVectorIndex is an in-memory VectorIndex for testing. It performs
// real cosine similarity ranking with the same filter-before-limit and
// tie-break semantics as the production index.
type MockVectorIndex struct {
	mu         sync.RWMutex
	byDocument map[string][]*domain.Chunk
	upserts    int
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		byDocument: make(map[string][]*domain.Chunk),
	}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, documentID string, chunks []*domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	stored := make([]*domain.Chunk, len(chunks))
	copy(stored, chunks)
	m.byDocument[documentID] = stored
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, ownerID string, queryVector []float32, filters domain.RetrievalFilters, topK int) ([]*domain.QueryResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var allowedDocs map[string]bool
	if len(filters.DocumentIDs) > 0 {
		allowedDocs = make(map[string]bool, len(filters.DocumentIDs))
		for _, id := range filters.DocumentIDs {
			allowedDocs[id] = true
		}
	}

	// Filters are applied to the full candidate set before the topK
	// limit, matching the production index.
	var results []*domain.QueryResult
	for docID, chunks := range m.byDocument {
		if allowedDocs != nil && !allowedDocs[docID] {
			continue
		}
		for _, chunk := range chunks {
			if chunk.UserID != ownerID {
				continue
			}
			if filters.AwardedOnly && !chunk.Metadata.Awarded {
				continue
			}
			sim := cosineSimilarity(queryVector, chunk.Embedding)
			if filters.MinRelevance > 0 && sim < filters.MinRelevance {
				continue
			}
			results = append(results, &domain.QueryResult{
				Chunk:      chunk,
				Similarity: sim,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Chunk.ChunkIndex < results[j].Chunk.ChunkIndex
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (m *MockVectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byDocument, documentID)
	return nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Helper methods for testing

func (m *MockVectorIndex) ChunkCount(documentID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byDocument[documentID])
}

func (m *MockVectorIndex) UpsertCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upserts
}
