// Package main provides the citematch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citematch/internal/config"
	"github.com/matsen/citematch/internal/logging"
	"github.com/matsen/citematch/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags
var (
	humanOutput bool   // human-readable output instead of JSON
	configPath  string // explicit config file
	logLevel    string // overrides log_level
	dbPath      string // overrides db_path
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citematch",
	Short: "Match in-text citations to bibliography entries",
	Long: `citematch resolves author-year citation markers such as "Smith（2020）"
or "张三（2024）" to entries of a reference list, tolerating OCR errors in
years and inconsistent author formatting.

For every citation it reports the matched reference, a year-corrected
citation and a canonical citation in the configured style. Reports can be
stored in a local SQLite database and inspected later.

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/citematch/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Report database path")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration and applies global flag overrides,
// exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v\n\n%s", err, config.HelpfulConfigMessage())
	}
	out := *cfg
	if logLevel != "" {
		out.LogLevel = logLevel
	}
	if dbPath != "" {
		out.DBPath = config.ExpandPath(dbPath)
	}
	return &out
}

// mustNewLogger builds the logger for the configured level, exits on error.
// The caller is responsible for calling Sync() on the returned logger.
func mustNewLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		exitWithError(ExitError, "creating logger: %v", err)
	}
	return logger
}

// mustOpenDatabase opens the report database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(cfg *config.Config) *storage.DB {
	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
