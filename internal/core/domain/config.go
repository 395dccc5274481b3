package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// ExtractionConfig controls scanning, scoring and publishing.
// All weights are non-negative; the score is normalised by the weight sum
// so it stays within [0, 1] regardless of the values chosen.
type ExtractionConfig struct {
	// WorkspaceRoot is the private directory tree to scan.
	WorkspaceRoot string

	// DestinationRoot is the public directory artifacts are published to.
	// Created if absent.
	DestinationRoot string

	// WeightSize weighs the saturating size signal.
	WeightSize float64

	// WeightRecency weighs the recency signal.
	WeightRecency float64

	// WeightDocs weighs the documentation bonus.
	WeightDocs float64

	// WeightTests weighs the test bonus.
	WeightTests float64

	// Threshold is the publication threshold. A candidate whose score
	// equals the threshold is eligible.
	Threshold float64

	// StalenessWindow is the age beyond which the recency signal
	// contributes its floor of zero.
	StalenessWindow time.Duration

	// Project is the identifier prefixed to generic public names.
	// Defaults to the destination root's base name.
	Project string

	// GenericNames are stems considered too common to publish unprefixed.
	GenericNames []string

	// IgnoreNames are directory and file names excluded from scanning.
	IgnoreNames []string

	// EvolutionLogPath is where the append-only extraction log lives.
	// Defaults to <workspace>/.aget/evolution/extractions.jsonl.
	EvolutionLogPath string
}

// DefaultExtractionConfig returns the documented defaults. Documentation
// and test signals outweigh raw size: the promotion step surfaces
// maintained, trustworthy artifacts, not merely large ones.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		WeightSize:      0.15,
		WeightRecency:   0.25,
		WeightDocs:      0.30,
		WeightTests:     0.30,
		Threshold:       0.60,
		StalenessWindow: 90 * 24 * time.Hour,
		GenericNames:    []string{"config", "data", "utils", "helper", "main", "index"},
		IgnoreNames: []string{
			".git", ".hg", ".svn",
			"node_modules", "__pycache__",
			"dist", "build",
			".DS_Store", ".aget",
		},
	}
}

// WithDerivedDefaults fills fields that depend on the configured roots.
func (c ExtractionConfig) WithDerivedDefaults() ExtractionConfig {
	if c.Project == "" && c.DestinationRoot != "" {
		c.Project = filepath.Base(c.DestinationRoot)
	}
	if c.EvolutionLogPath == "" && c.WorkspaceRoot != "" {
		c.EvolutionLogPath = filepath.Join(c.WorkspaceRoot, ".aget", "evolution", "extractions.jsonl")
	}
	return c
}

// Validate checks the configuration for values the pipeline cannot
// work with.
func (c ExtractionConfig) Validate() error {
	for name, w := range map[string]float64{
		"weight_size":    c.WeightSize,
		"weight_recency": c.WeightRecency,
		"weight_docs":    c.WeightDocs,
		"weight_tests":   c.WeightTests,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, name, w)
		}
	}
	if c.WeightSize+c.WeightRecency+c.WeightDocs+c.WeightTests == 0 {
		return fmt.Errorf("%w: at least one weight must be positive", ErrInvalidConfig)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be within [0,1], got %v", ErrInvalidConfig, c.Threshold)
	}
	if c.StalenessWindow <= 0 {
		return fmt.Errorf("%w: staleness window must be positive", ErrInvalidConfig)
	}
	return nil
}
