// Package citation parses in-text author+year citation markers.
package citation

import (
	"regexp"
	"strings"

	"github.com/matsen/citematch/internal/script"
)

// YearAlphabet is the set of characters accepted in a cited year. Besides
// digits it includes letters that OCR commonly produces in place of digits.
const YearAlphabet = "0-9OoIiZzSsGgBbDd"

// Patterns are tried in order; the first match wins.
var patterns = []*regexp.Regexp{
	// 张三（2024）
	regexp.MustCompile(`^(.+?)（([` + YearAlphabet + `]{4})）`),
	// Smith (2020)
	regexp.MustCompile(`^(.+?)\s*\(([` + YearAlphabet + `]{4})\)`),
}

var numericRe = regexp.MustCompile(`^\[\d+\]$`)

// authEnvelope marks author-year markers produced by the document extractor.
const authEnvelope = "[AUTH:"

// Mention is an author+year citation marker parsed from document text.
type Mention struct {
	Raw    string `json:"raw"`
	Author string `json:"author"`
	Year   string `json:"year"` // exactly 4 characters, possibly OCR-corrupted
}

// Parse extracts the author and year from a citation marker.
// The boolean is false when the marker matches no recognized pattern.
func Parse(raw string) (Mention, bool) {
	raw = script.Sanitize(raw)
	for _, re := range patterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		author := strings.TrimSpace(m[1])
		if author == "" {
			continue
		}
		return Mention{Raw: raw, Author: author, Year: m[2]}, true
	}
	return Mention{}, false
}

// Unwrap removes the "[AUTH:...]" envelope the extractor places around
// author-year markers. Markers without the envelope are returned trimmed.
func Unwrap(raw string) string {
	raw = script.Sanitize(raw)
	if strings.HasPrefix(raw, authEnvelope) && strings.HasSuffix(raw, "]") {
		return strings.TrimSpace(raw[len(authEnvelope) : len(raw)-1])
	}
	return raw
}

// IsNumeric reports whether the marker is a numeric label such as "[12]".
func IsNumeric(raw string) bool {
	return numericRe.MatchString(script.Sanitize(raw))
}
