package domain

// RetrievalFilters is a conjunction of predicates evaluated by the vector
// index itself, not post-filtered in process. Filtering before the topK
// limit is required for correct counts under truncation.
type RetrievalFilters struct {
	AwardedOnly  bool     `json:"awarded_only,omitempty"`
	MinRelevance float64  `json:"min_relevance,omitempty"` // cosine similarity threshold
	DocumentIDs  []string `json:"document_ids,omitempty"`
}

// QueryResult wraps a retrieved chunk with its similarity score and a
// query-local display id. DisplayID is assigned 1..K in rank order per
// query and is distinct from the chunk's storage-time DisplayID, so
// citation numbers in a single response are always contiguous from 1.
type QueryResult struct {
	Chunk      *Chunk  `json:"chunk"`
	Similarity float64 `json:"similarity"` // cosine, in [-1, 1]
	DisplayID  int     `json:"display_id"`
}
