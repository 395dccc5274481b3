package driven

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// HistoryStore persists publication records for audit queries.
// Backed by SQLite.
type HistoryStore interface {
	// Record stores one publication.
	Record(ctx context.Context, rec *domain.PublicationRecord) error

	// List returns recent publications, most recent first.
	// A non-positive limit returns all records.
	List(ctx context.Context, limit int) ([]domain.PublicationRecord, error)
}
