package domain

import "time"

// Document represents an essay or writing sample owned by a student.
// Documents are immutable once chunked; re-ingesting a document replaces
// all of its chunks (replace-all semantics in the vector index).
type Document struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Awarded   bool      `json:"awarded"` // essay belonged to a winning application
	WrittenAt time.Time `json:"written_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChunkMetadata is the provenance carried alongside every chunk.
// A closed struct rather than a free-form map so retrieval filters and
// prompt formatting stay typed.
type ChunkMetadata struct {
	Title       string    `json:"title"`
	Awarded     bool      `json:"awarded"`
	WrittenAt   time.Time `json:"written_at"`
	TotalChunks int       `json:"total_chunks"`
	WordCount   int       `json:"word_count"`
}

// ChunkSpan is the chunker's output unit: a word-window slice of a
// document body, before embedding or storage.
type ChunkSpan struct {
	Index   int    `json:"index"` // zero-based, emission order
	Content string `json:"content"`
}

// Chunk is the unit of retrieval: a bounded, overlapping word-window
// slice of a document together with its embedding vector.
type Chunk struct {
	ID         string        `json:"id"`
	DocumentID string        `json:"document_id"`
	UserID     string        `json:"user_id"`
	ChunkIndex int           `json:"chunk_index"` // zero-based, creation order
	Content    string        `json:"content"`
	Embedding  []float32     `json:"embedding,omitempty"`
	DisplayID  int           `json:"display_id"` // 1-based storage-time id, rendering only
	Metadata   ChunkMetadata `json:"metadata"`
	CreatedAt  time.Time     `json:"created_at"`
}
