package driven

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// ScanResult is the outcome of one workspace traversal.
type ScanResult struct {
	// Candidates holds one entry per regular file found, in lexicographic
	// path order.
	Candidates []domain.Candidate

	// SkippedPaths lists subtrees that could not be read. The scan
	// continues past them; callers surface these as warnings.
	SkippedPaths []string
}

// WorkspaceScanner walks a private workspace tree and produces candidate
// records. Directories are not emitted and symbolic links are not
// followed.
type WorkspaceScanner interface {
	// Scan traverses root recursively. Returns
	// domain.ErrWorkspaceNotFound if root does not exist or is not a
	// directory. Unreadable subtrees are recorded in SkippedPaths
	// rather than aborting the scan.
	Scan(ctx context.Context, root string) (*ScanResult, error)
}
