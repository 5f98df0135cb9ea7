package driving

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// AuthService authenticates users and validates bearer tokens.
type AuthService interface {
	// Login verifies credentials and issues a JWT
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)

	// Register creates a new account
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// ValidateToken parses and verifies a bearer token
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
