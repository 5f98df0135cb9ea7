package driven

import "github.com/scribewell-labs/essay-core/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations.
// Storage lives in UserStore; this port only hashes and signs.
type AuthAdapter interface {
	// Password operations
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
