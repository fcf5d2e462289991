package genius

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CleanString normalizes a title or name for comparison: NFKC, punctuation
// and zero-width characters removed, case folded, surrounding whitespace
// trimmed. CleanString(CleanString(s)) == CleanString(s).
func CleanString(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if isZeroWidth(r) || unicode.IsPunct(r) || (r <= unicode.MaxASCII && unicode.IsSymbol(r)) {
			return -1
		}
		return r
	}, s)
	s = cases.Fold().String(s)
	s = norm.NFKC.String(s)
	return strings.TrimSpace(s)
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return false
}

// ResolveHit picks the hit of type hitType that best matches term.
//
// Candidates are the hits of that type from the top section, followed by
// the hits of that type from the remaining sections, where sections whose
// own type is hitType come last (stable, so ties keep their order). The
// first candidate whose field equals term after CleanString wins. Failing
// that, for songs, the first candidate accepted by filter wins (pass a nil
// filter to skip this step). Otherwise the first candidate is returned, or
// nil if there are none.
func ResolveHit(resp *SearchResponse, term, hitType, field string, filter *Filter) *Hit {
	hits := candidateHits(resp, hitType)
	if len(hits) == 0 {
		return nil
	}

	want := CleanString(term)
	for _, h := range hits {
		if CleanString(h.Result.String(field)) == want {
			return h
		}
	}

	if hitType == "song" && filter != nil {
		for _, h := range hits {
			if filter.IsLyrics(h.Result.String("lyrics_state"), h.Result.String("title")) {
				return h
			}
		}
	}

	return hits[0]
}

// candidateHits collects the hits of hitType in resolution order.
func candidateHits(resp *SearchResponse, hitType string) []*Hit {
	if resp == nil || len(resp.Sections) == 0 {
		return nil
	}

	var hits []*Hit
	top := &resp.Sections[0]
	for i := range top.Hits {
		if top.Hits[i].Type == hitType {
			hits = append(hits, &top.Hits[i])
		}
	}

	rest := make([]*Section, 0, len(resp.Sections)-1)
	for i := 1; i < len(resp.Sections); i++ {
		rest = append(rest, &resp.Sections[i])
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Type != hitType && rest[j].Type == hitType
	})

	for _, section := range rest {
		for i := range section.Hits {
			if section.Hits[i].Type == hitType {
				hits = append(hits, &section.Hits[i])
			}
		}
	}
	return hits
}
