// Package format renders canonical in-text citations from a matched
// entry's authors and year.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Style selects an output citation style.
type Style string

const (
	Compact Style = "compact"
	APA     Style = "apa"
	MLA     Style = "mla"
	Chicago Style = "chicago"
	Numeric Style = "numeric"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = Compact

// ErrUnknownStyle is returned by ParseStyle for names it does not recognize.
var ErrUnknownStyle = errors.New("unknown citation style")

var styleAliases = map[string]Style{
	"chinese_academy_of_sciences": Compact,
}

// Styles returns the supported style names in display order.
func Styles() []Style {
	return []Style{Compact, APA, MLA, Chicago, Numeric}
}

// ParseStyle resolves a style name. The empty string selects DefaultStyle.
func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultStyle, nil
	}
	if s, ok := styleAliases[key]; ok {
		return s, nil
	}
	s := Style(key)
	if _, ok := renderers[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s, nil
}

// renderer formats an author list and year in one style.
type renderer func(authors []string, year string, hasEtAl bool) string

var renderers = map[Style]renderer{
	Compact: compact,
	APA:     apa,
	MLA:     mla,
	Chicago: chicago,
	Numeric: numeric,
}

// Format renders authors and year in the given style. Unknown styles fall
// back to Compact.
func Format(style Style, authors []string, year string, hasEtAl bool) string {
	render, ok := renderers[style]
	if !ok {
		render = renderers[DefaultStyle]
	}
	return render(authors, year, hasEtAl)
}
