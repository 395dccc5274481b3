package driving

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// HistoryService exposes the publication history.
type HistoryService interface {
	// List returns recent publications, most recent first.
	// A non-positive limit returns all records.
	List(ctx context.Context, limit int) ([]domain.PublicationRecord, error)
}
