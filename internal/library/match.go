package library

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides whether an album matches a search term.
//
// Matching is a substring test on the normalized title and the normalized
// artists: both sides are lowercased, stripped of diacritics and have their
// whitespace collapsed. An empty term matches every album.
type Matcher struct {
	term string
}

// NewMatcher creates a matcher for the given term.
func NewMatcher(term string) Matcher {
	return Matcher{term: Normalize(term)}
}

// Term returns the normalized term.
func (m Matcher) Term() string {
	return m.term
}

// Match reports whether the album matches.
func (m Matcher) Match(a Album) bool {
	return m.MatchFields(a.Title, a.Artists)
}

// MatchFields reports whether the term is found in the title or artists.
func (m Matcher) MatchFields(title, artists string) bool {
	if m.term == "" {
		return true
	}
	return strings.Contains(Normalize(title), m.term) ||
		strings.Contains(Normalize(artists), m.term)
}

// Normalize folds a string for matching: lowercase, no diacritics ("café"
// becomes "cafe") and single spaces between words.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
