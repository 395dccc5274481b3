package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// ScanInput is the input schema for the scan_candidates tool.
type ScanInput struct {
	EligibleOnly bool `json:"eligible_only,omitempty" jsonschema:"only return candidates at or above the publication threshold"`
}

// ScanOutput is the output schema for the scan_candidates tool.
type ScanOutput struct {
	Candidates []CandidateOutput `json:"candidates"`
	Count      int               `json:"count"`
	Skipped    []string          `json:"skipped,omitempty"`
}

// CandidateOutput represents a single scored candidate.
type CandidateOutput struct {
	Path             string  `json:"path"`
	SizeBytes        int64   `json:"size_bytes"`
	ModifiedAt       string  `json:"modified_at"`
	HasDocumentation bool    `json:"has_documentation"`
	HasTests         bool    `json:"has_tests"`
	Category         string  `json:"category"`
	Score            float64 `json:"score"`
	Eligible         bool    `json:"eligible"`
}

// PreviewInput is the input schema for the preview_extraction tool.
type PreviewInput struct{}

// PreviewOutput is the output schema for the preview_extraction tool.
type PreviewOutput struct {
	Planned  []PlannedOutput `json:"planned"`
	Scanned  int             `json:"scanned"`
	Warnings []string        `json:"warnings,omitempty"`
}

// PlannedOutput represents one planned publication.
type PlannedOutput struct {
	SourcePath       string  `json:"source_path"`
	PublicName       string  `json:"public_name"`
	Score            float64 `json:"score"`
	WouldCollideWith string  `json:"would_collide_with,omitempty"`
}

// ExtractInput is the input schema for the extract_output tool.
type ExtractInput struct {
	SourcePath string `json:"source_path,omitempty" jsonschema:"workspace-relative path of a single candidate to publish; omit to publish every eligible candidate"`
}

// ExtractOutput is the output schema for the extract_output tool.
type ExtractOutput struct {
	Scanned   int               `json:"scanned"`
	Eligible  int               `json:"eligible"`
	Published []PublishedOutput `json:"published"`
	Skipped   int               `json:"skipped"`
	Failures  []FailureOutput   `json:"failures,omitempty"`
}

// PublishedOutput represents a single published artifact.
type PublishedOutput struct {
	SourcePath  string  `json:"source_path"`
	PublicName  string  `json:"public_name"`
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	ExtractedAt string  `json:"extracted_at"`
}

// FailureOutput represents one candidate that could not be published.
type FailureOutput struct {
	SourcePath string `json:"source_path"`
	PublicName string `json:"public_name,omitempty"`
	Error      string `json:"error"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_candidates",
		Description: "Scan the private workspace and score publication candidates",
	}, s.handleScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_extraction",
		Description: "Dry-run the extraction: proposed public names and collisions, without writing anything",
	}, s.handlePreview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_output",
		Description: "Publish eligible workspace outputs to the public destination",
	}, s.handleExtract)
}

// handleScan handles the scan_candidates tool invocation.
func (s *Server) handleScan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScanInput,
) (*mcp.CallToolResult, ScanOutput, error) {
	report, err := s.ports.Extractor.Scan(ctx)
	if err != nil {
		return nil, ScanOutput{}, err
	}

	output := ScanOutput{Skipped: report.SkippedPaths}
	for i := range report.Candidates {
		c := &report.Candidates[i]
		if input.EligibleOnly && !c.Eligible {
			continue
		}
		output.Candidates = append(output.Candidates, CandidateOutput{
			Path:             c.Path,
			SizeBytes:        c.SizeBytes,
			ModifiedAt:       c.ModifiedAt.Format(time.RFC3339),
			HasDocumentation: c.HasDocumentation,
			HasTests:         c.HasTests,
			Category:         string(c.Category),
			Score:            c.Score,
			Eligible:         c.Eligible,
		})
	}
	output.Count = len(output.Candidates)

	return nil, output, nil
}

// handlePreview handles the preview_extraction tool invocation.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ PreviewInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	report, err := s.ports.Extractor.Plan(ctx)
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	output := PreviewOutput{
		Planned:  make([]PlannedOutput, len(report.Planned)),
		Scanned:  report.Scanned,
		Warnings: report.Warnings,
	}
	for i, p := range report.Planned {
		output.Planned[i] = PlannedOutput{
			SourcePath:       p.SourcePath,
			PublicName:       p.ProposedPublicName,
			Score:            p.Score,
			WouldCollideWith: p.WouldCollideWith,
		}
	}

	return nil, output, nil
}

// handleExtract handles the extract_output tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	var (
		batch *domain.BatchResult
		err   error
	)
	if input.SourcePath != "" {
		batch, err = s.ports.Extractor.Extract(ctx, input.SourcePath)
	} else {
		batch, err = s.ports.Extractor.ExtractAll(ctx)
	}
	// An empty batch is a valid tool result, not a protocol error.
	if err != nil && !errors.Is(err, domain.ErrNoEligibleCandidates) {
		return nil, ExtractOutput{}, err
	}
	if batch == nil {
		return nil, ExtractOutput{}, nil
	}

	output := ExtractOutput{
		Scanned:  batch.Summary.Scanned,
		Eligible: batch.Summary.Eligible,
		Skipped:  batch.Summary.Skipped,
	}
	for _, m := range batch.Published {
		output.Published = append(output.Published, PublishedOutput{
			SourcePath:  m.SourcePath,
			PublicName:  m.PublicName,
			Score:       m.ScoreAtExtraction,
			Category:    string(m.Category),
			ExtractedAt: m.ExtractedAt.Format(time.RFC3339),
		})
	}
	for _, f := range batch.Failures {
		output.Failures = append(output.Failures, FailureOutput{
			SourcePath: f.SourcePath,
			PublicName: f.PublicName,
			Error:      f.Err.Error(),
		})
	}

	return nil, output, nil
}
