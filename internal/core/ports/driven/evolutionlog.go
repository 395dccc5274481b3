package driven

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// EvolutionLog is the append-only, process-wide history of publications.
// The log is created if absent and never truncated or edited by this
// core; exactly one entry is appended per successful publication.
type EvolutionLog interface {
	// Append writes one entry to the end of the log.
	Append(ctx context.Context, entry domain.EvolutionLogEntry) error
}
