// Package matcher resolves in-text citation markers to bibliography entries.
package matcher

import (
	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/format"
	"github.com/matsen/citematch/internal/reference"
	"github.com/matsen/citematch/internal/similarity"
)

// DefaultThreshold is the combined score a candidate must exceed to match.
const DefaultThreshold = 0.3

// Options configures a Matcher.
type Options struct {
	Threshold float64
	Weights   similarity.Weights
	Style     format.Style
}

// DefaultOptions returns the standard threshold, weighting and style.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Weights:   similarity.DefaultWeights,
		Style:     format.DefaultStyle,
	}
}

// Kind classifies a citation marker.
type Kind string

const (
	KindAuthorYear  Kind = "author_year" // "Smith（2020）", "Smith (2020)"
	KindNumeric     Kind = "numeric"     // "[12]", passed through by label
	KindUnparseable Kind = "unparseable"
)

// NoReference is the ReferenceIndex of an unmatched result.
const NoReference = -1

// Result is the outcome for one citation marker.
type Result struct {
	CitationIndex int               `json:"citation_index"`
	Citation      string            `json:"citation"`
	Kind          Kind              `json:"kind"`
	Mention       *citation.Mention `json:"mention,omitempty"`

	Matched        bool                  `json:"matched"`
	ReferenceIndex int                   `json:"reference_index"`
	Reference      string                `json:"reference,omitempty"`
	Score          float64               `json:"score"`
	Components     similarity.Components `json:"components"`

	CorrectedText   string `json:"corrected_text"`
	FormattedText   string `json:"formatted_text"`
	NeedsCorrection bool   `json:"needs_correction"` // CorrectedText != Citation
	NeedsFormatting bool   `json:"needs_formatting"` // FormattedText != CorrectedText
}

// Stats holds the aggregate counters of a run.
type Stats struct {
	TotalCitations  int     `json:"total_citations"`
	TotalReferences int     `json:"total_references"`
	Matched         int     `json:"matched"`
	Unmatched       int     `json:"unmatched"`
	Corrected       int     `json:"corrected"`
	Formatted       int     `json:"formatted"`
	Unused          int     `json:"unused"`
	MatchRate       float64 `json:"match_rate"`
}

// Report is the full output of one run over a document.
type Report struct {
	Results          []Result          `json:"results"`
	Stats            Stats             `json:"stats"`
	UnusedReferences []reference.Entry `json:"unused_references"`
}
