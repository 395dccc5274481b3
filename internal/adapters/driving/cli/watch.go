package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aget-labs/bridge-cli/internal/logger"
)

// debounceInterval batches bursts of filesystem events into one rescan.
const debounceInterval = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and report candidates on change",
	Long: `Watches the workspace root and prints a fresh dry-run report whenever
files change. Nothing is ever published; use 'bridge extract' for that.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if extractor == nil {
		return errors.New("extraction service not configured (set workspace and destination roots)")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, extractionConfig.WorkspaceRoot, extractionConfig.IgnoreNames); err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n\n", extractionConfig.WorkspaceRoot)
	if err := printPlan(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	debounce := time.NewTimer(debounceInterval)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("Workspace event: %s", event)
			// New directories need to be watched too.
			if event.Op.Has(fsnotify.Create) {
				if err := watchTree(watcher, event.Name, extractionConfig.IgnoreNames); err != nil {
					logger.Debug("Cannot watch %s: %v", event.Name, err)
				}
			}
			debounce.Reset(debounceInterval)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", watchErr)

		case <-debounce.C:
			cmd.Println("\nWorkspace changed:")
			if err := printPlan(cmd); err != nil {
				return err
			}
		}
	}
}

// watchTree registers root and every non-ignored subdirectory with the
// watcher. Non-directory paths are ignored.
func watchTree(watcher *fsnotify.Watcher, root string, ignore []string) error {
	ignored := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignored[name] = struct{}{}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are reported by the scan itself
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if _, skip := ignored[name]; skip {
			return filepath.SkipDir
		}
		if path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Debug("Cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func printPlan(cmd *cobra.Command) error {
	report, err := extractor.Plan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(report.Planned) == 0 {
		cmd.Printf("Scanned %d candidate(s); none eligible.\n", report.Scanned)
		return nil
	}

	cmd.Printf("Scanned %d candidate(s); %d eligible:\n", report.Scanned, len(report.Planned))
	for _, p := range report.Planned {
		line := fmt.Sprintf("  %s -> %s (score %s)", p.SourcePath, p.ProposedPublicName, formatScore(p.Score))
		if p.WouldCollideWith != "" {
			line += "  COLLISION with " + p.WouldCollideWith
		}
		cmd.Println(line)
	}
	return nil
}
