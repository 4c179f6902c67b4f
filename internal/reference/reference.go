// Package reference parses raw bibliography lines into structured entries.
package reference

import (
	"regexp"
	"strings"

	"github.com/matsen/citematch/internal/script"
)

// Entry is a bibliography line with the fields needed for citation matching.
type Entry struct {
	// Identity
	Index int    `json:"index"` // Position in the input list; distinct entries may share Raw
	Raw   string `json:"raw"`
	Label string `json:"label,omitempty"` // Leading numeric label such as "[12]"

	// Extracted fields
	PrimaryAuthor string   `json:"primary_author"`
	Year          string   `json:"year"`
	Authors       []string `json:"authors"` // Print order; Authors[0] is the display author
	HasEtAl       bool     `json:"has_et_al"`
}

// Scoreable reports whether the entry can take part in scoring. Entries
// without a primary author are kept for bookkeeping but never win a match.
func (e Entry) Scoreable() bool {
	return e.PrimaryAuthor != ""
}

// Text returns the entry text without its numeric label.
func (e Entry) Text() string {
	_, rest := StripLabel(e.Raw)
	return rest
}

var labelRe = regexp.MustCompile(`^\s*(\[\d+\])\s*`)

// StripLabel removes a leading numeric bracket label.
// It returns the label (empty if none) and the remaining text.
func StripLabel(raw string) (string, string) {
	m := labelRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return "", raw
	}
	return raw[m[2]:m[3]], raw[m[1]:]
}

// Parse builds an Entry from one raw bibliography line.
func Parse(index int, raw string) Entry {
	raw = script.Sanitize(raw)
	label, text := StripLabel(raw)

	authors, etAl := ExtractAuthors(text)
	return Entry{
		Index:         index,
		Raw:           raw,
		Label:         label,
		PrimaryAuthor: ExtractPrimaryAuthor(text),
		Year:          ExtractYear(text),
		Authors:       authors,
		HasEtAl:       etAl,
	}
}

// ParseAll parses a list of bibliography lines, preserving order.
func ParseAll(raws []string) []Entry {
	entries := make([]Entry, len(raws))
	for i, raw := range raws {
		entries[i] = Parse(i, raw)
	}
	return entries
}

var (
	primaryAuthorRe  = regexp.MustCompile(`^([^.,]+)`)
	trailingDengRe   = regexp.MustCompile(`等$`)
	trailingEtAlRe   = regexp.MustCompile(`et al\.?$`)
	parenYearRe      = regexp.MustCompile(`\s*[（(]\d{4}[）)]`)
	primarySeparator = "，"
)

// ExtractPrimaryAuthor returns the first author of a label-stripped entry:
// the text before the first "." or ",", cut at the first full-width comma
// and at a parenthesised year, with a trailing "等" or "et al." removed.
func ExtractPrimaryAuthor(text string) string {
	m := primaryAuthorRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	author := cutParenYear(strings.TrimSpace(m[1]))
	if i := strings.Index(author, primarySeparator); i >= 0 {
		author = strings.TrimSpace(author[:i])
	}
	author = strings.TrimSpace(trailingDengRe.ReplaceAllString(author, ""))
	author = strings.TrimSpace(trailingEtAlRe.ReplaceAllString(author, ""))
	return author
}

// cutParenYear drops everything from the first "(YYYY)" or "（YYYY）".
func cutParenYear(s string) string {
	if loc := parenYearRe.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[0]])
	}
	return s
}
