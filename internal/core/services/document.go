package services

import (
	"context"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driven"
	"github.com/scribewell-labs/essay-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documents driven.DocumentStore
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documents driven.DocumentStore) driving.DocumentService {
	return &documentService{documents: documents}
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.Get(ctx, id)
}

// GetByUser retrieves documents for a user, newest first
func (s *documentService) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.documents.GetByUser(ctx, userID, limit, offset)
}

// CountByUser returns the document count for a user
func (s *documentService) CountByUser(ctx context.Context, userID string) (int, error) {
	return s.documents.CountByUser(ctx, userID)
}
