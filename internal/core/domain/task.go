package domain

import "time"

// IngestTask asks the worker to (re-)ingest one document: chunk, embed
// and replace its entries in the vector index.
type IngestTask struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID string    `json:"document_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	Attempts   int       `json:"attempts"`
}
