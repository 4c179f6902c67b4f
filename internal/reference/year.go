package reference

import "regexp"

// yearPatterns are tried in priority order. Parenthetical dates outrank
// years that merely trail a comma, colon or space.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\((\d{4})\)`),
	regexp.MustCompile(`\((\d{4})\)\.`),
	regexp.MustCompile(`（(\d{4})）`),
	regexp.MustCompile(`,\s*(\d{4})[,)]`),
	regexp.MustCompile(`,\s*(\d{4})\.`),
	regexp.MustCompile(`,\s*(\d{4})`),
	regexp.MustCompile(`:\s*(\d{4})\.`),
	regexp.MustCompile(`:\s*(\d{4})`),
	regexp.MustCompile(`\s(\d{4})\.`),
	regexp.MustCompile(`\s(\d{4})`),
}

// ExtractYear returns the publication year of a label-stripped entry, or ""
// if no pattern matches.
func ExtractYear(text string) string {
	for _, re := range yearPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
