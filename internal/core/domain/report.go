package domain

import "errors"

// PlannedExtraction describes what a dry run would do for one eligible
// candidate.
type PlannedExtraction struct {
	// SourcePath is the workspace-relative path of the candidate.
	SourcePath string

	// ProposedPublicName is the name the candidate would publish under.
	ProposedPublicName string

	// Score is the candidate's value score.
	Score float64

	// WouldCollideWith names the existing entry that would block the
	// publication, empty when the name is free.
	WouldCollideWith string
}

// DryRunReport is the outcome of a simulated publish. Producing it never
// touches the destination root.
type DryRunReport struct {
	// Planned covers every eligible candidate, ordered by descending
	// score then path.
	Planned []PlannedExtraction

	// Scanned is the total number of candidates discovered.
	Scanned int

	// Warnings lists paths skipped during scanning.
	Warnings []string
}

// PublishFailure records one candidate that could not be published.
// Failures never abort the batch.
type PublishFailure struct {
	// SourcePath is the candidate that failed.
	SourcePath string

	// PublicName is the name that was attempted, if derivation got
	// that far.
	PublicName string

	// Err is the underlying error (collision or write failure).
	Err error
}

// BatchSummary counts the outcome of one pipeline run. Every run
// produces a summary, even when some candidates failed.
type BatchSummary struct {
	Scanned   int
	Eligible  int
	Published int
	Skipped   int
	Failed    int
}

// BatchResult is the full outcome of an apply-mode run.
type BatchResult struct {
	Summary   BatchSummary
	Published []ExtractionManifest
	Failures  []PublishFailure
	Warnings  []string
}

// Collisions returns the failures caused by name collisions.
func (r *BatchResult) Collisions() []PublishFailure {
	var out []PublishFailure
	for _, f := range r.Failures {
		var ce *CollisionError
		if errors.As(f.Err, &ce) {
			out = append(out, f)
		}
	}
	return out
}
