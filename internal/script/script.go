// Package script provides script detection and input sanitation shared by
// the citation and reference parsers.
package script

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// chineseMarkers are tokens that mark a reference as Chinese even when the
// leading characters are Latin (e.g. transliterated author names).
var chineseMarkers = []string{"，", "。", "期刊", "杂志"}

// chinesePrefixRunes is how many leading runes are inspected for CJK text.
const chinesePrefixRunes = 50

// IsCJK reports whether r is a CJK unified ideograph.
func IsCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// ContainsCJK reports whether s contains any CJK unified ideograph.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}

// IsChineseReference reports whether a bibliography line should be parsed
// with the Chinese author rules.
func IsChineseReference(raw string) bool {
	if ContainsCJK(Prefix(raw, chinesePrefixRunes)) {
		return true
	}
	for _, m := range chineseMarkers {
		if strings.Contains(raw, m) {
			return true
		}
	}
	return false
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// RuneIndex returns the rune offset of the first occurrence of sub in s,
// or -1 if sub is not present.
func RuneIndex(s, sub string) int {
	idx := strings.Index(s, sub)
	if idx < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:idx])
}

// Sanitize NFC-normalizes s and trims surrounding whitespace. Invalid UTF-8
// is replaced rather than rejected so a single bad item never aborts a run.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.TrimSpace(norm.NFC.String(s))
}
