package domain

import "time"

// ExtractionManifest is the persisted record of one publication.
// It is created at publish time, immutable thereafter, and stored
// alongside the published artifact.
type ExtractionManifest struct {
	// ID uniquely identifies this publication event.
	ID string `json:"id"`

	// SourcePath is the workspace-relative path the artifact came from.
	SourcePath string `json:"source_path"`

	// PublicName is the derived name at the destination root.
	// Unique within the destination at the time of writing.
	PublicName string `json:"public_name"`

	// ExtractedAt is when the publication happened.
	ExtractedAt time.Time `json:"extracted_at"`

	// TransformationNotes lists the rename/normalise rules applied to
	// derive PublicName, in the order they were applied.
	TransformationNotes []string `json:"transformation_notes"`

	// ScoreAtExtraction is the value score that made the candidate
	// eligible.
	ScoreAtExtraction float64 `json:"score_at_extraction"`

	// Category classifies the published artifact.
	Category Category `json:"category"`

	// Destination is the destination root the artifact was published to.
	Destination string `json:"destination"`
}

// EvolutionLogEntry is one line of the append-only extraction history.
// Entries are never edited or removed.
type EvolutionLogEntry struct {
	// SourcePath is the workspace-relative origin of the artifact.
	SourcePath string `json:"source_path"`

	// OutputName is the public name the artifact was published under.
	OutputName string `json:"output_name"`

	// Timestamp is when the publication happened.
	Timestamp time.Time `json:"timestamp"`

	// Notes summarises the transformation applied.
	Notes string `json:"notes"`
}

// PublicationRecord is a row in the durable publication history.
type PublicationRecord struct {
	ID          string
	SourcePath  string
	PublicName  string
	Category    Category
	Score       float64
	Destination string
	ExtractedAt time.Time
}
