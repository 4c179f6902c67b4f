package format

import (
	"strings"

	"github.com/matsen/citematch/internal/script"
)

const (
	chineseEtAl = " 等"
	latinEtAl   = " et al."

	// apaMaxListed is the longest author list APA prints in full.
	apaMaxListed = 20
)

func isChinese(authors []string) bool {
	return len(authors) > 0 && script.ContainsCJK(authors[0])
}

func parenYear(year string) string {
	return "（" + year + "）"
}

func compact(authors []string, year string, hasEtAl bool) string {
	if len(authors) == 0 {
		return parenYear(year)
	}

	if isChinese(authors) {
		if len(authors) > 1 || hasEtAl {
			return authors[0] + chineseEtAl + parenYear(year)
		}
		return authors[0] + parenYear(year)
	}

	if len(authors) == 1 && !hasEtAl && isInstitutional(authors[0]) {
		return strings.TrimSpace(authors[0]) + parenYear(year)
	}

	switch {
	case len(authors) > 2 || hasEtAl:
		return Surname(authors[0]) + latinEtAl + parenYear(year)
	case len(authors) == 2:
		return Surname(authors[0]) + " & " + Surname(authors[1]) + parenYear(year)
	default:
		return Surname(authors[0]) + parenYear(year)
	}
}

func apa(authors []string, year string, _ bool) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = WithInitials(a)
	}

	var list string
	switch n := len(names); {
	case n == 0:
		return "(" + year + ")."
	case n > apaMaxListed:
		list = strings.Join(names[:apaMaxListed-1], ", ") + ", ... " + names[n-1]
	case n > 1:
		list = strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
	default:
		list = names[0]
	}
	return list + " (" + year + ")."
}

// leadAuthor is the MLA and Chicago author form: the first author with
// initials, followed by "et al." when others exist.
func leadAuthor(authors []string, hasEtAl bool) string {
	if len(authors) == 0 {
		return ""
	}
	lead := WithInitials(authors[0])
	if len(authors) > 1 || hasEtAl {
		lead += ", et al."
	}
	return lead
}

func mla(authors []string, year string, hasEtAl bool) string {
	if lead := leadAuthor(authors, hasEtAl); lead != "" {
		return lead + " " + year + "."
	}
	return year + "."
}

func chicago(authors []string, year string, hasEtAl bool) string {
	return mla(authors, year, hasEtAl)
}

func numeric(authors []string, year string, _ bool) string {
	if len(authors) == 0 {
		return "[" + year + "]"
	}
	return "[" + Surname(authors[0]) + latinEtAl + ", " + year + "]"
}
