package mcp

import (
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extractor runs the scan/score/publish pipeline.
	Extractor driving.Extractor

	// History lists past publications.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Extractor == nil {
		return ErrMissingExtractor
	}
	// History is optional; the resource degrades to an empty list.
	return nil
}
