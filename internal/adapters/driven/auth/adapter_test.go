package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

func testAdapter() *Adapter {
	// MinCost keeps the test fast
	return NewAdapterWithCost("test-secret", bcrypt.MinCost)
}

func TestAdapter_PasswordRoundTrip(t *testing.T) {
	a := testAdapter()

	hash, err := a.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Error("hash equals plaintext")
	}
	if !a.VerifyPassword("correct horse battery", hash) {
		t.Error("expected correct password to verify")
	}
	if a.VerifyPassword("wrong password", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestAdapter_TokenRoundTrip(t *testing.T) {
	a := testAdapter()
	now := time.Now()
	claims := &domain.TokenClaims{
		UserID:    "user-1",
		Email:     "alex@example.edu",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}

	token, err := a.GenerateToken(claims)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.Email != claims.Email {
		t.Errorf("claims mismatch: %+v", parsed)
	}
	if parsed.ExpiresAt != claims.ExpiresAt {
		t.Errorf("expected expiry %d, got %d", claims.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestAdapter_WrongSecretRejected(t *testing.T) {
	a := testAdapter()
	other := NewAdapterWithCost("different-secret", bcrypt.MinCost)
	now := time.Now()

	token, err := a.GenerateToken(&domain.TokenClaims{
		UserID:    "user-1",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ParseToken(token); err == nil {
		t.Error("expected parse to fail with a different secret")
	}
}

func TestAdapter_ExpiredTokenRejected(t *testing.T) {
	a := testAdapter()
	now := time.Now()

	token, err := a.GenerateToken(&domain.TokenClaims{
		UserID:    "user-1",
		IssuedAt:  now.Add(-2 * time.Hour).Unix(),
		ExpiresAt: now.Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ParseToken(token); err == nil {
		t.Error("expected parse to reject an expired token")
	}
}

func TestAdapter_GarbageToken(t *testing.T) {
	if _, err := testAdapter().ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
