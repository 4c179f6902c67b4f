package similarity

import "github.com/pmezard/go-difflib/difflib"

// Ratio returns the gestalt (Ratcliff/Obershelp) similarity of a and b
// compared rune by rune: twice the matching runes over the total rune
// count. Two empty strings are identical.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
