package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citematch/internal/matcher"
	"github.com/matsen/citematch/internal/storage"
)

// Batch command flags
var (
	batchWorkers int
	batchStyle   string
	batchOut     string
	batchSave    bool
)

// BatchItem is one document in the batch response.
type BatchItem struct {
	ID     string          `json:"id"`
	RunID  string          `json:"run_id,omitempty"`
	Stats  matcher.Stats   `json:"stats"`
	Report *matcher.Report `json:"report,omitempty"`
}

// BatchResponse is the response for the batch command.
type BatchResponse struct {
	Documents []BatchItem `json:"documents"`
	Output    string      `json:"output,omitempty"`
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Documents processed concurrently (default from config)")
	batchCmd.Flags().StringVar(&batchStyle, "style", "", "Citation style: compact, apa, mla, chicago, numeric")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write full reports as JSONL to this file")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Store each report in the database")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE.jsonl",
	Short: "Match many independent documents concurrently",
	Long: `Match every document of a JSONL file, one document per line:

  {"id": "doc-1", "citations": ["Smith（2020）"], "references": ["Smith, J. (2020)."]}

Non-string citations or references are treated as empty strings.

Examples:
  citematch batch docs.jsonl --workers 8
  citematch batch docs.jsonl -o reports.jsonl --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync()

	opts, err := resolveOptions(cfg, batchStyle, 0, false)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	workers := cfg.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	docs, err := storage.ReadDocuments(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading documents: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := matcher.New(opts, logger).Batch(ctx, docs, workers)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := BatchResponse{Documents: make([]BatchItem, len(reports))}
	for i, r := range reports {
		resp.Documents[i] = BatchItem{ID: r.ID, Stats: r.Report.Stats}
	}

	if batchOut != "" {
		if err := storage.WriteReports(batchOut, reports); err != nil {
			exitWithError(ExitError, "writing reports: %v", err)
		}
		resp.Output = batchOut
	} else if !humanOutput {
		for i := range reports {
			resp.Documents[i].Report = &reports[i].Report
		}
	}

	if batchSave {
		db := mustOpenDatabase(cfg)
		defer db.Close()

		for i, r := range reports {
			run, err := db.SaveReport(storage.RunMeta{
				Source:    r.ID,
				Style:     string(opts.Style),
				Threshold: opts.Threshold,
			}, r.Report)
			if err != nil {
				exitWithError(ExitError, "saving report %s: %v", r.ID, err)
			}
			resp.Documents[i].RunID = run.ID
		}
		logger.Info("batch reports saved", zap.Int("runs", len(reports)), zap.String("db", cfg.DBPath))
	}

	if humanOutput {
		idWidth := 2
		for _, d := range resp.Documents {
			if n := len([]rune(d.ID)); n > idWidth {
				idWidth = n
			}
		}
		outputHuman("%s  %s  %s  %s  %s\n",
			padRight("ID", idWidth), padLeft("CITES", 5), padLeft("MATCHED", 7), padLeft("CORRECTED", 9), "UNUSED")
		for _, d := range resp.Documents {
			outputHuman("%s  %s  %s  %s  %s\n",
				padRight(d.ID, idWidth),
				padLeft(strconv.Itoa(d.Stats.TotalCitations), 5),
				padLeft(strconv.Itoa(d.Stats.Matched), 7),
				padLeft(strconv.Itoa(d.Stats.Corrected), 9),
				strconv.Itoa(d.Stats.Unused))
		}
		if resp.Output != "" {
			outputHuman("Reports written to %s\n", resp.Output)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
