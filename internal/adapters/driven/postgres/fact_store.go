package postgres

import (
	"context"
	"database/sql"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.FactStore = (*FactStore)(nil)

// FactStore implements driven.FactStore using PostgreSQL
type FactStore struct {
	db *DB
}

// NewFactStore creates a new FactStore
func NewFactStore(db *DB) *FactStore {
	return &FactStore{db: db}
}

// Get retrieves one fact value
func (s *FactStore) Get(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM facts WHERE user_id = $1 AND key = $2`, userID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return value, err
}

// List retrieves all facts for a user keyed by fact key
func (s *FactStore) List(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM facts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		facts[key] = value
	}
	return facts, rows.Err()
}

// Set stores a confirmed fact
func (s *FactStore) Set(ctx context.Context, fact *domain.Fact) error {
	query := `
		INSERT INTO facts (user_id, key, value, confirmed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			confirmed_at = EXCLUDED.confirmed_at
	`
	_, err := s.db.ExecContext(ctx, query, fact.UserID, fact.Key, fact.Value, fact.ConfirmedAt)
	return err
}
