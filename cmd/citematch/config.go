package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/citematch/internal/config"
	"github.com/matsen/citematch/internal/format"
)

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	config.Config
	Path   string         `json:"path"`
	Styles []format.Style `json:"styles"`
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the effective configuration.

Settings are read from the config file, then .env, then CITEMATCH_*
environment variables, then command-line flags.

Keys:
  style          compact, apa, mla, chicago, numeric
  threshold      minimum combined score for a match, in [0, 1)
  author_weight  weight of the author score
  year_weight    weight of the year score (weights sum to 1)
  workers        batch concurrency
  log_level      debug, info, warn, error
  db_path        report database`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	path := configPath
	if path == "" {
		path = config.GlobalConfigPath()
	}

	if humanOutput {
		outputHuman("config file:   %s\n", path)
		outputHuman("style:         %s\n", cfg.Style)
		outputHuman("threshold:     %g\n", cfg.Threshold)
		outputHuman("author_weight: %g\n", cfg.AuthorWeight)
		outputHuman("year_weight:   %g\n", cfg.YearWeight)
		outputHuman("workers:       %d\n", cfg.Workers)
		outputHuman("log_level:     %s\n", cfg.LogLevel)
		outputHuman("db_path:       %s\n", cfg.DBPath)
	} else {
		outputJSON(ConfigResponse{Config: *cfg, Path: path, Styles: format.Styles()})
	}
	return nil
}
