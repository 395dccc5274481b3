package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

var extractDryRun bool

var extractCmd = &cobra.Command{
	Use:   "extract [source-path]",
	Short: "Publish eligible candidates to the destination",
	Long: `Runs the full pipeline: scan, score, and publish every eligible
candidate to the destination root. Each publication writes the artifact,
a manifest beside it, and appends an entry to the evolution log.

If a source path is given, only that candidate is published.
With --dry-run, the would-be outcome is reported without touching disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&extractDryRun, "dry-run", "n", false, "report what would be published without writing anything")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractor == nil {
		return errors.New("extraction service not configured (set workspace and destination roots)")
	}

	if extractDryRun {
		return runExtractDryRun(cmd)
	}

	var (
		result *domain.BatchResult
		err    error
	)
	if len(args) > 0 {
		result, err = extractor.Extract(cmd.Context(), args[0])
	} else {
		result, err = extractor.ExtractAll(cmd.Context())
	}

	if result != nil {
		printBatchResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if collisions := result.Collisions(); len(collisions) > 0 {
		return fmt.Errorf("extract finished with %d %w(s)", len(collisions), domain.ErrNameCollision)
	}
	if result.Summary.Failed > 0 {
		return fmt.Errorf("extract finished with %d failed candidate(s): %w", result.Summary.Failed, domain.ErrWriteFailure)
	}
	return nil
}

func runExtractDryRun(cmd *cobra.Command) error {
	report, err := extractor.Plan(cmd.Context())
	if err != nil {
		return fmt.Errorf("dry run failed: %w", err)
	}

	for _, path := range report.Warnings {
		cmd.Println(styled(styleWarning, "warning: skipped unreadable path "+path))
	}

	cmd.Printf("Dry run: %d candidate(s) scanned, %d eligible.\n", report.Scanned, len(report.Planned))
	for _, p := range report.Planned {
		line := fmt.Sprintf("  %s -> %s (score %s)", p.SourcePath, p.ProposedPublicName, formatScore(p.Score))
		if p.WouldCollideWith != "" {
			line += "  COLLISION with " + p.WouldCollideWith
			cmd.Println(styled(styleWarning, line))
			continue
		}
		cmd.Println(line)
	}
	cmd.Println("\nNothing was written. Re-run without --dry-run to publish.")
	return nil
}

func printBatchResult(cmd *cobra.Command, result *domain.BatchResult) {
	for _, path := range result.Warnings {
		cmd.Println(styled(styleWarning, "warning: skipped unreadable path "+path))
	}

	for _, m := range result.Published {
		cmd.Printf("Published %s as %s (score %s)\n", m.SourcePath, m.PublicName, formatScore(m.ScoreAtExtraction))
	}
	for _, f := range result.Failures {
		cmd.Println(styled(styleWarning, fmt.Sprintf("Failed %s: %v", f.SourcePath, f.Err)))
	}

	s := result.Summary
	cmd.Printf("\nScanned %d, eligible %d, published %d, skipped %d, failed %d.\n",
		s.Scanned, s.Eligible, s.Published, s.Skipped, s.Failed)
}
