package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citematch/internal/matcher"
)

// Constants for output formatting.
const (
	DefaultHistoryLimit = 20 // Default limit for history list

	CitationMaxLen  = 40 // Citation column in report tables
	ReferenceMaxLen = 70 // Reference text in report details
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// padRight pads a string with spaces on the right to width runes.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft pads a string with spaces on the left to width runes.
func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// resultStatus summarizes a result in one word.
func resultStatus(r matcher.Result) string {
	switch {
	case !r.Matched:
		return "unmatched"
	case r.NeedsCorrection:
		return "corrected"
	case r.NeedsFormatting:
		return "reformat"
	default:
		return "ok"
	}
}

// printReportHuman prints a match report in human-readable format.
func printReportHuman(report matcher.Report) {
	for _, r := range report.Results {
		outputHuman("%s  %s  %s\n",
			padLeft(fmt.Sprintf("%d", r.CitationIndex+1), 3),
			padRight(resultStatus(r), 9),
			truncateString(r.Citation, CitationMaxLen))
		if r.Matched {
			outputHuman("     -> [%d] %s\n", r.ReferenceIndex+1, truncateString(r.Reference, ReferenceMaxLen))
			if r.Kind == matcher.KindAuthorYear {
				outputHuman("     score %.2f (author %.2f, year %.2f)\n", r.Score, r.Components.Author, r.Components.Year)
			}
		}
		if r.NeedsCorrection {
			outputHuman("     corrected: %s\n", r.CorrectedText)
		}
		if r.NeedsFormatting {
			outputHuman("     formatted: %s\n", r.FormattedText)
		}
	}

	if len(report.UnusedReferences) > 0 {
		outputHuman("\nUnused references:\n")
		for _, e := range report.UnusedReferences {
			outputHuman("  [%d] %s\n", e.Index+1, truncateString(e.Raw, ReferenceMaxLen))
		}
	}

	printStatsHuman(report.Stats)
}

// printStatsHuman prints aggregate counters.
func printStatsHuman(s matcher.Stats) {
	outputHuman("\n%d citations, %d references: %d matched (%.0f%%), %d unmatched, %d corrected, %d reformatted, %d unused\n",
		s.TotalCitations, s.TotalReferences, s.Matched, s.MatchRate*100,
		s.Unmatched, s.Corrected, s.Formatted, s.Unused)
}
