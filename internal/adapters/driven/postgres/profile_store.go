package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore implements driven.ProfileStore using PostgreSQL
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get retrieves a user's profile
func (s *ProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, style, essay_count, ready, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile domain.Profile
	var styleJSON []byte

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&styleJSON,
		&profile.EssayCount,
		&profile.Ready,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(styleJSON, &profile.Style); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save creates or updates a profile
func (s *ProfileStore) Save(ctx context.Context, profile *domain.Profile) error {
	styleJSON, err := json.Marshal(profile.Style)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (user_id, style, essay_count, ready, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			style = EXCLUDED.style,
			essay_count = EXCLUDED.essay_count,
			ready = EXCLUDED.ready,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		profile.UserID,
		styleJSON,
		profile.EssayCount,
		profile.Ready,
		profile.UpdatedAt,
	)
	return err
}
