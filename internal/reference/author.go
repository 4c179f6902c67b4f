package reference

import (
	"regexp"
	"strings"

	"github.com/matsen/citematch/internal/script"
)

const (
	chineseEtAl      = "等"
	chineseSeparator = "，"
	latinSeparator   = ","
)

var (
	etAlRe = regexp.MustCompile(`(?i)et al`)

	// Chinese author block: everything before the first period.
	chineseSegmentRe = regexp.MustCompile(`^([^.。]+?)[.。]`)

	// Latin author block candidates, in priority order.
	latinSegmentRes = []*regexp.Regexp{
		regexp.MustCompile(`^([^(]+?)\(\d{4}\)`),
		regexp.MustCompile(`^([^.]+?)\.\s*\(\d{4}\)`),
		regexp.MustCompile(`^([^.]+?)\.`),
	}

	andRe       = regexp.MustCompile(`\s+and\s+`)
	ampersandRe = regexp.MustCompile(`\s*&\s*`)
	etAlStripRe = regexp.MustCompile(`(?i),?\s*et al\.?`)

	// initialsRe matches a token made only of initials: "J.", "J. K.", "J.-P.".
	initialsRe = regexp.MustCompile(`^\p{Lu}\.(?:\s*-?\p{Lu}\.)*$`)
)

// ExtractAuthors returns the ordered author list of a label-stripped entry
// and whether the entry marks unlisted additional authors.
func ExtractAuthors(text string) ([]string, bool) {
	etAl := etAlRe.MatchString(text)
	if script.IsChineseReference(text) {
		authors, deng := chineseAuthors(text)
		return authors, etAl || deng
	}
	return latinAuthors(text), etAl
}

// chineseAuthors splits the block before the first period, cut at a
// parenthesised year, on full-width commas (or ASCII commas when there are none). A standalone "等" entry is
// dropped and a trailing "等" is trimmed; both report et al.
func chineseAuthors(text string) ([]string, bool) {
	m := chineseSegmentRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	block := cutParenYear(m[1])

	sep := latinSeparator
	if strings.Contains(block, chineseSeparator) {
		sep = chineseSeparator
	}

	var authors []string
	etAl := false
	for _, part := range strings.Split(block, sep) {
		name := strings.TrimSpace(part)
		if name == chineseEtAl {
			etAl = true
			continue
		}
		if trimmed := strings.TrimSpace(strings.TrimSuffix(name, chineseEtAl)); trimmed != name && trimmed != "" {
			name = trimmed
			etAl = true
		}
		if name != "" {
			authors = append(authors, name)
		}
	}
	return authors, etAl
}

// latinAuthorBlock locates the author segment of a Latin-script entry.
func latinAuthorBlock(text string) string {
	for _, re := range latinSegmentRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	comma := strings.Index(text, latinSeparator)
	period := strings.Index(text, ".")
	switch {
	case comma != -1 && (period == -1 || comma < period):
		return text[:comma]
	case period != -1:
		return text[:period]
	}
	return ""
}

func latinAuthors(text string) []string {
	block := latinAuthorBlock(text)
	if strings.TrimSpace(block) == "" {
		return nil
	}
	block = andRe.ReplaceAllString(block, ", ")
	block = ampersandRe.ReplaceAllString(block, ", ")
	block = etAlStripRe.ReplaceAllString(block, "")
	return splitLatinAuthors(block)
}

// splitLatinAuthors splits an author block on commas. A token holding only
// initials is the given-name part of a "Surname, I." author and is joined
// onto the author before it, so "Smith, J., Doe, A." yields two authors.
func splitLatinAuthors(block string) []string {
	var authors []string
	var current strings.Builder

	flush := func() {
		token := strings.TrimSpace(current.String())
		current.Reset()
		if token == "" {
			return
		}
		if initialsRe.MatchString(token) && len(authors) > 0 {
			authors[len(authors)-1] += " " + token
			return
		}
		authors = append(authors, token)
	}

	for _, r := range block {
		if r == ',' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return authors
}
