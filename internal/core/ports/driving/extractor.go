package driving

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// ScanReport is the outcome of a scan-and-score pass.
type ScanReport struct {
	// Candidates holds every discovered candidate with its score,
	// ordered by descending score then path.
	Candidates []domain.ScoredCandidate

	// SkippedPaths lists unreadable paths skipped during the scan.
	SkippedPaths []string
}

// Extractor runs the bridge pipeline: scan the private workspace, score
// candidates, and publish eligible ones to the public destination.
type Extractor interface {
	// Scan discovers and scores candidates without touching the
	// destination.
	Scan(ctx context.Context) (*ScanReport, error)

	// Plan performs a dry run: name derivation and collision detection
	// for every eligible candidate, with no filesystem mutation.
	Plan(ctx context.Context) (*domain.DryRunReport, error)

	// ExtractAll publishes every eligible candidate. Recoverable
	// per-candidate failures (collisions, write errors) are reported in
	// the result and never abort the batch.
	ExtractAll(ctx context.Context) (*domain.BatchResult, error)

	// Extract publishes the single candidate at the given
	// workspace-relative path. Returns domain.ErrNotFound if no such
	// candidate exists and domain.ErrNoEligibleCandidates if it scores
	// below the threshold.
	Extract(ctx context.Context, sourcePath string) (*domain.BatchResult, error)
}
