package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Candidate is a file discovered in the private workspace.
// Candidates are created fresh on every scan and discarded after scoring.
type Candidate struct {
	// Path is the location relative to the workspace root, using forward
	// slashes. Unique within one scan.
	Path string

	// SizeBytes is the file size.
	SizeBytes int64

	// ModifiedAt is the last modification time.
	ModifiedAt time.Time

	// HasDocumentation is true if an adjacent description file exists
	// (same-stem markdown or a sibling README).
	HasDocumentation bool

	// HasTests is true if an adjacent test-like file exists.
	HasTests bool

	// Category classifies the candidate by extension.
	Category Category
}

// Name returns the base file name of the candidate.
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// ScoredCandidate is a Candidate plus its computed value score.
// Derived, immutable, and scoped to a single pipeline run.
type ScoredCandidate struct {
	Candidate

	// Score is a deterministic function of the candidate attributes,
	// bounded to [0, 1].
	Score float64

	// Eligible is true when Score >= the publication threshold.
	// The boundary is inclusive.
	Eligible bool
}

// Category classifies what kind of artifact a candidate is.
type Category string

// Known categories.
const (
	CategoryTool          Category = "tool"
	CategoryData          Category = "data"
	CategoryConfig        Category = "config"
	CategoryDocumentation Category = "documentation"
	CategoryOther         Category = "other"
)

// categoryByExt maps file extensions to categories.
var categoryByExt = map[string]Category{
	".py":   CategoryTool,
	".sh":   CategoryTool,
	".js":   CategoryTool,
	".go":   CategoryTool,
	".json": CategoryData,
	".csv":  CategoryData,
	".yaml": CategoryConfig,
	".yml":  CategoryConfig,
	".toml": CategoryConfig,
	".ini":  CategoryConfig,
	".md":   CategoryDocumentation,
}

// Categorise returns the category for a file path based on its extension.
func Categorise(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if cat, ok := categoryByExt[ext]; ok {
		return cat
	}
	return CategoryOther
}
