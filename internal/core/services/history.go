package services

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the durable publication history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns recent publications, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.PublicationRecord, error) {
	return s.store.List(ctx, limit)
}
