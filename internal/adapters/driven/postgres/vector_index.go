package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex implements driven.VectorIndex on pgvector. Similarity is
// cosine: 1 - (embedding <=> query), where <=> is pgvector's cosine
// distance operator.
type VectorIndex struct {
	db           *DB
	embeddingDim int
}

// NewVectorIndex creates a new VectorIndex. embeddingDim must match the
// vector column declared in the schema.
func NewVectorIndex(db *DB, embeddingDim int) *VectorIndex {
	return &VectorIndex{db: db, embeddingDim: embeddingDim}
}

// Upsert atomically replaces all chunks of a document. Delete and insert
// run in one transaction so a query never observes a half-replaced
// document.
func (v *VectorIndex) Upsert(ctx context.Context, documentID string, chunks []*domain.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Embedding) != v.embeddingDim {
			return fmt.Errorf("%w: chunk %s has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), v.embeddingDim)
		}
	}

	return v.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID); err != nil {
			return fmt.Errorf("delete existing chunks: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO chunks (id, document_id, user_id, chunk_index, content, embedding, display_id, metadata, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, chunk := range chunks {
			metadataJSON, err := json.Marshal(chunk.Metadata)
			if err != nil {
				return err
			}
			_, err = stmt.ExecContext(ctx,
				chunk.ID,
				chunk.DocumentID,
				chunk.UserID,
				chunk.ChunkIndex,
				chunk.Content,
				pgvector.NewVector(chunk.Embedding),
				chunk.DisplayID,
				metadataJSON,
				chunk.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert chunk %s: %w", chunk.ID, err)
			}
		}
		return nil
	})
}

// Query runs the nearest-neighbor search for one owner. All filters are
// part of the WHERE clause so they apply before LIMIT: a topK window is
// filled with passing rows, never truncated by rows a filter would have
// dropped. Ties on similarity break by chunk_index ascending.
func (v *VectorIndex) Query(ctx context.Context, ownerID string, queryVector []float32, filters domain.RetrievalFilters, topK int) ([]*domain.QueryResult, error) {
	if len(queryVector) != v.embeddingDim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(queryVector), v.embeddingDim)
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, document_id, user_id, chunk_index, content, display_id, metadata, created_at,
		       1 - (embedding <=> $1) AS similarity
		FROM chunks
		WHERE user_id = $2
	`)
	args := []any{pgvector.NewVector(queryVector), ownerID}

	if filters.AwardedOnly {
		sb.WriteString(` AND (metadata->>'awarded')::boolean = TRUE`)
	}
	if filters.MinRelevance > 0 {
		args = append(args, filters.MinRelevance)
		fmt.Fprintf(&sb, ` AND 1 - (embedding <=> $1) >= $%d`, len(args))
	}
	if len(filters.DocumentIDs) > 0 {
		placeholders := make([]string, len(filters.DocumentIDs))
		for i, id := range filters.DocumentIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		fmt.Fprintf(&sb, ` AND document_id IN (%s)`, strings.Join(placeholders, ", "))
	}

	args = append(args, topK)
	fmt.Fprintf(&sb, ` ORDER BY embedding <=> $1, chunk_index ASC LIMIT $%d`, len(args))

	rows, err := v.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var results []*domain.QueryResult
	for rows.Next() {
		var (
			chunk        domain.Chunk
			metadataJSON []byte
			similarity   float64
		)
		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.UserID,
			&chunk.ChunkIndex,
			&chunk.Content,
			&chunk.DisplayID,
			&metadataJSON,
			&chunk.CreatedAt,
			&similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if err := json.Unmarshal(metadataJSON, &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("decode chunk metadata: %w", err)
		}
		results = append(results, &domain.QueryResult{
			Chunk:      &chunk,
			Similarity: similarity,
		})
	}
	return results, rows.Err()
}

// DeleteByDocument removes all chunks for a document
func (v *VectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := v.db.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID)
	return err
}

// HealthCheck verifies the index is available
func (v *VectorIndex) HealthCheck(ctx context.Context) error {
	return v.db.PingContext(ctx)
}
