package format

import (
	"regexp"
	"strings"
	"unicode"
)

// Lower-case surname particles that belong to the following token.
var surnamePrefixes = map[string]bool{
	"van":    true,
	"den":    true,
	"de":     true,
	"der":    true,
	"ter":    true,
	"ten":    true,
	"vanden": true,
	"vander": true,
}

const maxSurnamePrefixes = 2

// initialRe matches a single initial token: "J", "J.", "J.K.", "J.-P.".
var initialRe = regexp.MustCompile(`^\p{Lu}\.?(?:-?\p{Lu}\.)*$`)

// splitName separates a comma-less name into given-name tokens and surname
// tokens, and reports whether the initials came after the surname
// ("Smith J.").
func splitName(name string) (given, surname []string, initialsLast bool) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return nil, nil, false
	}

	// Trailing initials: "Smith J. K."
	end := len(tokens)
	for end > 1 && initialRe.MatchString(tokens[end-1]) {
		end--
	}
	if end < len(tokens) {
		return tokens[end:], tokens[:end], true
	}

	start := len(tokens) - 1
	for i := 0; i < maxSurnamePrefixes && start > 0; i++ {
		if !surnamePrefixes[strings.ToLower(tokens[start-1])] {
			break
		}
		start--
	}
	return tokens[:start], tokens[start:], false
}

// Surname extracts the family name of an author.
// "Ohanian, R." -> "Ohanian", "Smith J." -> "Smith",
// "Jan van der Berg" -> "van der Berg".
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if before, _, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(before)
	}
	_, surname, _ := splitName(name)
	if len(surname) == 0 {
		return name
	}
	return strings.Join(surname, " ")
}

// WithInitials renders a name as "Surname, I. I.". Names already in
// "Surname, Given" form and single-token names are returned unchanged.
func WithInitials(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, ", ") {
		return name
	}
	given, surname, initialsLast := splitName(name)
	if len(given) == 0 {
		return name
	}

	initials := make([]string, len(given))
	for i, g := range given {
		if initialsLast || initialRe.MatchString(g) {
			initials[i] = strings.TrimSuffix(g, ".") + "."
			continue
		}
		initials[i] = string([]rune(g)[0]) + "."
	}
	return strings.Join(surname, " ") + ", " + strings.Join(initials, " ")
}

// isInstitutional reports whether a lone author looks like an organization:
// more than two name tokens with no surname particle, or fully upper-case.
func isInstitutional(name string) bool {
	if isUpper(name) {
		return true
	}
	given, surname, initialsLast := splitName(name)
	return !initialsLast && len(surname) == 1 && len(given)+len(surname) > 2
}

// isUpper reports whether s has at least one cased letter and no lower-case
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
