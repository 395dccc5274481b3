package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded publications",
	Long:  `Lists publications recorded in the durable history, most recent first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of records to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No publications recorded yet.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %-13s %s -> %s (score %s)\n",
			rec.ExtractedAt.Local().Format("2006-01-02 15:04"),
			rec.Category, rec.SourcePath, rec.PublicName, formatScore(rec.Score))
	}

	return nil
}
