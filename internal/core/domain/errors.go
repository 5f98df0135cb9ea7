package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotConfigured indicates a required provider credential or
	// endpoint is missing. Fatal, requires operator action, never retried.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrProviderUnavailable indicates an embedding or generation call
	// failed or returned malformed data. Hard, retryable later.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDimensionMismatch indicates an embedding whose dimensionality
	// does not match the vector index schema
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIngestInProgress indicates another ingest is running for the
	// same document
	ErrIngestInProgress = errors.New("ingest already in progress")
)
