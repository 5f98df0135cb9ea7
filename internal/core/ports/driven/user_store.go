package driven

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// UserStore persists user accounts
type UserStore interface {
	// Create stores a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email; domain.ErrNotFound when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)
}
