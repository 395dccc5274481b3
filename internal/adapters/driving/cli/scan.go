package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aget-labs/bridge-cli/internal/adapters/driving/tui"
)

var scanInteractive bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the workspace for publishable candidates",
	Long: `Walks the workspace root, scores every candidate file and lists them
by descending value score. Eligible candidates are marked; nothing is
published.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "browse candidates in an interactive picker")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if extractor == nil {
		return errors.New("extraction service not configured (set workspace and destination roots)")
	}

	report, err := extractor.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanInteractive {
		return tui.RunPicker(report.Candidates)
	}

	for _, path := range report.SkippedPaths {
		cmd.Println(styled(styleWarning, "warning: skipped unreadable path "+path))
	}

	if len(report.Candidates) == 0 {
		cmd.Println("No candidates found.")
		return nil
	}

	cmd.Printf("Found %d candidate(s):\n\n", len(report.Candidates))
	for _, c := range report.Candidates {
		marker := " "
		if c.Eligible {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s  %-13s %s", marker, formatScore(c.Score), c.Category, c.Path)
		if c.Eligible {
			cmd.Println(styled(styleEligible, line))
		} else {
			cmd.Println(styled(styleMuted, line))
		}
	}
	cmd.Println("\n* eligible for extraction")

	return nil
}
