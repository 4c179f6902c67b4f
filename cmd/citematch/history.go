package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/matsen/citematch/internal/storage"
)

var historyLimit int

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", DefaultHistoryLimit, "Maximum runs to list (0 for all)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored match reports",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		exitWithError(ExitError, "listing runs: %v", err)
	}

	if !humanOutput {
		outputJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		outputHuman("No stored runs\n")
		return nil
	}
	sourceWidth := 6 // "SOURCE"
	for _, r := range runs {
		if n := len([]rune(r.Meta.Source)); n > sourceWidth {
			sourceWidth = n
		}
	}
	outputHuman("%s  %s  %s  %s\n", padRight("ID", 36), padRight("CREATED", 20), padRight("SOURCE", sourceWidth), "MATCHED")
	for _, r := range runs {
		outputHuman("%s  %s  %s  %d/%d\n",
			r.ID,
			padRight(r.CreatedAt.Format("2006-01-02 15:04:05"), 20),
			padRight(r.Meta.Source, sourceWidth),
			r.Stats.Matched, r.Stats.TotalCitations)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	detail, err := db.GetRun(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "loading run: %v", err)
	}

	if humanOutput {
		outputHuman("Run %s (%s, style %s)\n\n", detail.ID, detail.Meta.Source, detail.Meta.Style)
		printReportHuman(detail.Report)
	} else {
		outputJSON(detail)
	}
	return nil
}
