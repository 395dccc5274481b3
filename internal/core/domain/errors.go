package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrWorkspaceNotFound indicates the workspace root does not exist
	// or is not a directory. Fatal: nothing is scanned.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrPermissionDenied indicates a path could not be read.
	// Per-path: the scan continues and the path is surfaced as a warning.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNameCollision indicates a derived public name already exists at
	// the destination. The candidate is skipped, never overwritten.
	ErrNameCollision = errors.New("name collision")

	// ErrWriteFailure indicates an I/O error while publishing a candidate.
	// Partial writes are cleaned up before this is surfaced.
	ErrWriteFailure = errors.New("write failure")

	// ErrManifestCorrupt indicates an existing manifest at the destination
	// could not be parsed. Fatal for that destination root: collision
	// detection cannot be trusted.
	ErrManifestCorrupt = errors.New("manifest corrupt")

	// ErrDestinationLocked indicates another process holds the destination
	// lock.
	ErrDestinationLocked = errors.New("destination locked")

	// ErrNoEligibleCandidates indicates a run found nothing to publish.
	ErrNoEligibleCandidates = errors.New("no eligible candidates")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates the extraction configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CollisionError carries both sides of a name collision so callers can
// report which existing entry blocked which incoming source.
type CollisionError struct {
	// PublicName is the derived name that collided.
	PublicName string

	// Existing is the path or source that already owns the name.
	Existing string

	// Incoming is the workspace source whose publication was refused.
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("name collision on %q: %s blocks %s", e.PublicName, e.Existing, e.Incoming)
}

// Unwrap allows errors.Is(err, ErrNameCollision) checks.
func (e *CollisionError) Unwrap() error {
	return ErrNameCollision
}
