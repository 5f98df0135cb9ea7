package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// ProfileStore persists learned writing profiles
type ProfileStore interface {
	// Get retrieves a user's profile; domain.ErrNotFound when absent
	Get(ctx context.Context, userID string) (*domain.Profile, error)

	// Save creates or updates a profile
	Save(ctx context.Context, profile *domain.Profile) error
}
