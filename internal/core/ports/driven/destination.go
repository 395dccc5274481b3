package driven

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// UnlockFunc releases a destination lock. Safe to call on all exit
// paths, including after failures.
type UnlockFunc func()

// Destination manages the public directory artifacts are promoted to.
// Implementations must never overwrite an existing entry.
type Destination interface {
	// Prepare creates the destination root if absent.
	Prepare(ctx context.Context) error

	// Lock acquires an advisory lock over the destination root for the
	// duration of "check collision, write manifest, append log".
	// Returns domain.ErrDestinationLocked if another process holds it.
	Lock(ctx context.Context) (UnlockFunc, error)

	// ExistingNames maps each public name already present at the
	// destination to the entry that owns it (an artifact file or a
	// prior manifest). Returns domain.ErrManifestCorrupt if any
	// manifest cannot be parsed, since collision detection would be
	// unreliable.
	ExistingNames(ctx context.Context) (map[string]string, error)

	// Publish copies the artifact at sourceAbs into the destination
	// under manifest.PublicName and writes the manifest beside it,
	// staging to a temporary location and moving into place atomically.
	// When writeDescription is true and no description exists, a stub
	// <PublicName>.md is generated. Partial writes are cleaned up
	// before an error is returned.
	Publish(ctx context.Context, sourceAbs string, manifest *domain.ExtractionManifest, writeDescription bool) error

	// Remove deletes a published artifact, its manifest and generated
	// description. Used to roll back a candidate whose publication
	// failed after the artifact was committed.
	Remove(ctx context.Context, publicName string) error
}
