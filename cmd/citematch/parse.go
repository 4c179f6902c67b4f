package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/matcher"
	"github.com/matsen/citematch/internal/reference"
	"github.com/matsen/citematch/internal/script"
)

// CitationParseResponse is the response for parse citation.
type CitationParseResponse struct {
	Input   string            `json:"input"`
	Marker  string            `json:"marker"`
	Kind    matcher.Kind      `json:"kind"`
	Mention *citation.Mention `json:"mention,omitempty"`
}

// ReferenceParseResponse is the response for parse reference.
type ReferenceParseResponse struct {
	reference.Entry
	Chinese     bool `json:"chinese"`
	IsScoreable bool `json:"scoreable"`
}

func init() {
	parseCmd.AddCommand(parseCitationCmd)
	parseCmd.AddCommand(parseReferenceCmd)
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Show how citations and references are parsed",
}

var parseCitationCmd = &cobra.Command{
	Use:   "citation TEXT",
	Short: "Parse an in-text citation marker",
	Long: `Parse an in-text citation marker into author and year.

Examples:
  citematch parse citation "Smith（2O2O）"
  citematch parse citation "[AUTH:张三（2024）]"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseCitation,
}

var parseReferenceCmd = &cobra.Command{
	Use:   "reference TEXT",
	Short: "Parse a bibliography entry",
	Long: `Parse a bibliography entry into label, primary author, author list and year.

Example:
  citematch parse reference "[3] Smith, J., & Doe, A. (2019). Title. Journal."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseReference,
}

// parseCitationText classifies and parses one citation marker.
func parseCitationText(input string) CitationParseResponse {
	marker := citation.Unwrap(input)
	resp := CitationParseResponse{Input: input, Marker: marker, Kind: matcher.KindUnparseable}
	if citation.IsNumeric(marker) {
		resp.Kind = matcher.KindNumeric
		return resp
	}
	if m, ok := citation.Parse(marker); ok {
		resp.Kind = matcher.KindAuthorYear
		resp.Mention = &m
	}
	return resp
}

func runParseCitation(cmd *cobra.Command, args []string) error {
	resp := parseCitationText(strings.Join(args, " "))

	if humanOutput {
		outputHuman("kind:   %s\n", resp.Kind)
		if resp.Mention != nil {
			outputHuman("author: %s\n", resp.Mention.Author)
			outputHuman("year:   %s\n", resp.Mention.Year)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

func runParseReference(cmd *cobra.Command, args []string) error {
	entry := reference.Parse(0, strings.Join(args, " "))
	resp := ReferenceParseResponse{
		Entry:       entry,
		Chinese:     script.IsChineseReference(entry.Text()),
		IsScoreable: entry.Scoreable(),
	}

	if humanOutput {
		if entry.Label != "" {
			outputHuman("label:   %s\n", entry.Label)
		}
		outputHuman("primary: %s\n", entry.PrimaryAuthor)
		outputHuman("authors: %s\n", strings.Join(entry.Authors, "; "))
		outputHuman("year:    %s\n", entry.Year)
		outputHuman("et al.:  %v\n", entry.HasEtAl)
		outputHuman("chinese: %v\n", resp.Chinese)
	} else {
		outputJSON(resp)
	}
	return nil
}
