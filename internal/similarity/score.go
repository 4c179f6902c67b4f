// Package similarity scores how well a parsed citation agrees with a
// candidate bibliography entry.
package similarity

import (
	"strings"

	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/reference"
	"github.com/matsen/citematch/internal/script"
)

// Author score tiers.
const (
	AuthorExact     = 1.0
	AuthorContained = 0.9
	AuthorNear      = 0.8 // found within the first nearWindow runes of the entry
	AuthorMid       = 0.6 // found within the first midWindow runes
	AuthorFar       = 0.4 // found anywhere else
	ratioFactor     = 0.5

	nearWindow = 100
	midWindow  = 200
)

// Year score tiers.
const (
	YearExact      = 1.0
	YearOCR        = 0.9
	YearInText     = 0.8
	YearNoEvidence = 0.0
)

// Components holds the per-field similarity of one citation/entry pair.
type Components struct {
	Author float64 `json:"author_score"`
	Year   float64 `json:"year_score"`
}

// Weights controls how Components combine into a single score.
// Author identity dominates by default.
type Weights struct {
	Author float64 `json:"author_weight" yaml:"author_weight"`
	Year   float64 `json:"year_weight" yaml:"year_weight"`
}

// DefaultWeights is the standard 0.6/0.4 author/year weighting.
var DefaultWeights = Weights{Author: 0.6, Year: 0.4}

// Combine returns the weighted sum of c.
func (w Weights) Combine(c Components) float64 {
	return c.Author*w.Author + c.Year*w.Year
}

// AuthorScore compares a cited author against an entry's primary author and
// full text. Comparison is case-insensitive.
func AuthorScore(citedAuthor, refText, refAuthor string) float64 {
	cited := strings.ToLower(strings.TrimSpace(citedAuthor))
	text := strings.ToLower(refText)
	primary := strings.ToLower(strings.TrimSpace(refAuthor))
	if cited == "" {
		return 0
	}

	if cited == primary {
		return AuthorExact
	}
	if primary != "" && (strings.Contains(primary, cited) || strings.Contains(cited, primary)) {
		return AuthorContained
	}

	if pos := script.RuneIndex(text, cited); pos >= 0 {
		switch {
		case pos < nearWindow:
			return AuthorNear
		case pos < midWindow:
			return AuthorMid
		default:
			return AuthorFar
		}
	}

	return Ratio(cited, primary) * ratioFactor
}

// YearScore compares a cited (possibly OCR-corrupted) year against an
// entry's extracted year and full text.
func YearScore(citedYear, refText, refYear string) float64 {
	if refYear != "" && citedYear == refYear {
		return YearExact
	}
	if refYear != "" && IsOCRConfusable(citedYear, refYear) {
		return YearOCR
	}
	if citedYear != "" && strings.Contains(refText, citedYear) {
		return YearInText
	}
	return YearNoEvidence
}

// Score computes both components for a mention against an entry.
func Score(m citation.Mention, e reference.Entry) Components {
	return Components{
		Author: AuthorScore(m.Author, e.Raw, e.PrimaryAuthor),
		Year:   YearScore(m.Year, e.Raw, e.Year),
	}
}
