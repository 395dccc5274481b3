// Package cli provides the cobra command tree for the bridge CLI.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/aget-labs/bridge-cli/internal/adapters/driven/config/file"
	destfs "github.com/aget-labs/bridge-cli/internal/adapters/driven/destination/fs"
	evolutionfile "github.com/aget-labs/bridge-cli/internal/adapters/driven/evolution/file"
	"github.com/aget-labs/bridge-cli/internal/adapters/driven/storage/sqlite"
	workspacefs "github.com/aget-labs/bridge-cli/internal/adapters/driven/workspace/fs"
	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
	"github.com/aget-labs/bridge-cli/internal/core/services"
	"github.com/aget-labs/bridge-cli/internal/logger"
)

// Package-level services, injected at wiring time. Command tests swap
// these for mocks.
var (
	version = "dev"

	extractor        driving.Extractor
	historyService   driving.HistoryService
	configStore      *configfile.ConfigStore
	extractionConfig domain.ExtractionConfig

	servicesWired bool
)

// Persistent flag values.
var (
	verboseFlag   bool
	configDirFlag string
	workspaceFlag string
	destFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Promote private workspace outputs to public products",
	Long: `Bridge scans a private workspace for valuable outputs, scores them,
and publishes eligible ones to a public destination with a manifest and
an append-only evolution log.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.bridge)")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "workspace root to scan (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&destFlag, "dest", "d", "", "destination root to publish to (overrides config)")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// setup wires adapters and services once flags have been parsed.
// Tests that inject mock services are left untouched.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if servicesWired || extractor != nil {
		return nil
	}

	store, err := configfile.NewConfigStore(configDirFlag)
	if err != nil {
		return err
	}
	configStore = store

	cfg := loadExtractionConfig(configStore)
	if err := cfg.Validate(); err != nil {
		return err
	}
	extractionConfig = cfg

	// The pipeline needs both roots; commands that require it report
	// a missing configuration themselves.
	if cfg.WorkspaceRoot != "" && cfg.DestinationRoot != "" {
		cfg = cfg.WithDerivedDefaults()
		extractionConfig = cfg

		var history driven.HistoryStore
		if db, dbErr := sqlite.NewStore(dataDir()); dbErr != nil {
			logger.Warn("Publication history unavailable: %v", dbErr)
		} else {
			history = db.HistoryStore()
			historyService = services.NewHistoryService(history)
		}

		extractor = services.NewExtractionOrchestrator(
			cfg,
			workspacefs.NewScanner(cfg.IgnoreNames),
			destfs.NewPublisher(cfg.DestinationRoot),
			evolutionfile.NewLog(cfg.EvolutionLogPath),
			history,
		)
	}

	servicesWired = true
	return nil
}

// dataDir returns the directory for the history database, next to the
// config file when a custom config dir is in use.
func dataDir() string {
	if configDirFlag == "" {
		return "" // sqlite store falls back to ~/.bridge/data
	}
	return configDirFlag + "/data"
}

// loadExtractionConfig merges documented defaults, the config file and
// command-line flag overrides.
func loadExtractionConfig(store driven.ConfigStore) domain.ExtractionConfig {
	cfg := domain.DefaultExtractionConfig()

	if v := store.GetString("workspace.root"); v != "" {
		cfg.WorkspaceRoot = v
	}
	if v := store.GetString("destination.root"); v != "" {
		cfg.DestinationRoot = v
	}
	if workspaceFlag != "" {
		cfg.WorkspaceRoot = workspaceFlag
	}
	if destFlag != "" {
		cfg.DestinationRoot = destFlag
	}

	if _, ok := store.Get("scoring.weight_size"); ok {
		cfg.WeightSize = store.GetFloat("scoring.weight_size")
	}
	if _, ok := store.Get("scoring.weight_recency"); ok {
		cfg.WeightRecency = store.GetFloat("scoring.weight_recency")
	}
	if _, ok := store.Get("scoring.weight_docs"); ok {
		cfg.WeightDocs = store.GetFloat("scoring.weight_docs")
	}
	if _, ok := store.Get("scoring.weight_tests"); ok {
		cfg.WeightTests = store.GetFloat("scoring.weight_tests")
	}
	if _, ok := store.Get("scoring.threshold"); ok {
		cfg.Threshold = store.GetFloat("scoring.threshold")
	}
	if days := store.GetInt("scoring.staleness_days"); days > 0 {
		cfg.StalenessWindow = time.Duration(days) * 24 * time.Hour
	}

	if v := store.GetString("naming.project"); v != "" {
		cfg.Project = v
	}
	if v := store.GetStringSlice("naming.generic_names"); v != nil {
		cfg.GenericNames = v
	}
	if v := store.GetStringSlice("scan.ignore"); v != nil {
		cfg.IgnoreNames = v
	}
	if v := store.GetString("evolution.log_path"); v != "" {
		cfg.EvolutionLogPath = v
	}

	return cfg
}
