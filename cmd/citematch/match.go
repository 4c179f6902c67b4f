package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citematch/internal/config"
	"github.com/matsen/citematch/internal/format"
	"github.com/matsen/citematch/internal/matcher"
	"github.com/matsen/citematch/internal/storage"
)

// Match command flags
var (
	matchCitations  string
	matchReferences string
	matchStyle      string
	matchThreshold  float64
	matchSave       bool
)

// MatchResponse is the response for the match command.
type MatchResponse struct {
	RunID  string         `json:"run_id,omitempty"`
	Report matcher.Report `json:"report"`
}

func init() {
	matchCmd.Flags().StringVar(&matchCitations, "citations", "", "File with one citation marker per line (required)")
	matchCmd.Flags().StringVar(&matchReferences, "references", "", "File with one reference entry per line (required)")
	matchCmd.Flags().StringVar(&matchStyle, "style", "", "Citation style: compact, apa, mla, chicago, numeric")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", matcher.DefaultThreshold, "Minimum combined score to accept a match")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Store the report in the database")
	matchCmd.MarkFlagRequired("citations")
	matchCmd.MarkFlagRequired("references")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match citations in one document to its reference list",
	Long: `Match every citation marker against the reference list and report the
matched entry, the year-corrected citation and the formatted citation.

Examples:
  citematch match --citations cites.txt --references refs.txt
  citematch match --citations cites.txt --references refs.txt --style apa --save`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

// resolveOptions applies command-line overrides to the configured options.
func resolveOptions(cfg *config.Config, style string, threshold float64, thresholdSet bool) (matcher.Options, error) {
	opts, err := cfg.MatcherOptions()
	if err != nil {
		return matcher.Options{}, err
	}
	if style != "" {
		s, err := format.ParseStyle(style)
		if err != nil {
			return matcher.Options{}, err
		}
		opts.Style = s
	}
	if thresholdSet {
		if threshold < 0 || threshold >= 1 {
			return matcher.Options{}, fmt.Errorf("threshold must be in [0, 1), got %g", threshold)
		}
		opts.Threshold = threshold
	}
	return opts, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync()

	opts, err := resolveOptions(cfg, matchStyle, matchThreshold, cmd.Flags().Changed("threshold"))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	citations, err := storage.ReadLines(matchCitations)
	if err != nil {
		exitWithError(ExitDataError, "reading citations: %v", err)
	}
	references, err := storage.ReadLines(matchReferences)
	if err != nil {
		exitWithError(ExitDataError, "reading references: %v", err)
	}

	report := matcher.New(opts, logger).Run(citations, references)

	resp := MatchResponse{Report: report}
	if matchSave {
		db := mustOpenDatabase(cfg)
		defer db.Close()

		run, err := db.SaveReport(storage.RunMeta{
			Source:    matchCitations,
			Style:     string(opts.Style),
			Threshold: opts.Threshold,
		}, report)
		if err != nil {
			exitWithError(ExitError, "saving report: %v", err)
		}
		resp.RunID = run.ID
	}

	if humanOutput {
		printReportHuman(report)
		if resp.RunID != "" {
			outputHuman("Saved run %s\n", resp.RunID)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
