package genius

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultExcludedTerms are the expressions that flag a search result as
// something other than song lyrics (tracklists, liner notes, ...).
var DefaultExcludedTerms = []string{
	`track\s?list`,
	`album art(work)?`,
	`liner notes`,
	`booklet`,
	`credits`,
	`interview`,
	`skit`,
	`instrumental`,
	`setlist`,
	`translation`,
	`snippet`,
}

// LyricsStateComplete is the lyrics_state of songs with full lyrics.
const LyricsStateComplete = "complete"

// Filter decides whether a result is a genuine song.
type Filter struct {
	terms []string
	re    *regexp.Regexp
}

// NewFilter builds a filter from the default terms extended with extra, or
// from extra alone when replace is set.
//
// Terms are regular expressions matched case-insensitively against the
// normalized title. An invalid expression is a configuration error.
func NewFilter(extra []string, replace bool) (*Filter, error) {
	var terms []string
	if !replace {
		terms = append(terms, DefaultExcludedTerms...)
	}
	for _, t := range extra {
		if t != "" {
			terms = append(terms, t)
		}
	}

	f := &Filter{terms: terms}
	if len(terms) == 0 {
		return f, nil
	}

	parts := make([]string, len(terms))
	for i, t := range terms {
		if _, err := regexp.Compile(t); err != nil {
			return nil, fmt.Errorf("%w: excluded term %q: %v", ErrInvalidConfig, t, err)
		}
		parts[i] = "(" + t + ")"
	}

	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: excluded terms: %v", ErrInvalidConfig, err)
	}
	f.re = re
	return f, nil
}

// Terms returns a copy of the filter's expressions.
func (f *Filter) Terms() []string {
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}

// IsLyrics reports whether a result with the given lyrics state and title is
// a genuine song. Results whose lyrics are not complete are never songs.
func (f *Filter) IsLyrics(lyricsState, title string) bool {
	if lyricsState != LyricsStateComplete {
		return false
	}
	if f.re == nil {
		return true
	}
	return !f.re.MatchString(CleanString(title))
}
