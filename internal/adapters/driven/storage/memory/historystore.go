// Package memory provides in-memory store implementations for testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.PublicationRecord
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores one publication.
func (s *HistoryStore) Record(_ context.Context, rec *domain.PublicationRecord) error {
	if rec == nil {
		return domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

// List returns recent publications, most recent first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.PublicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PublicationRecord, len(s.records))
	copy(out, s.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExtractedAt.After(out[j].ExtractedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
