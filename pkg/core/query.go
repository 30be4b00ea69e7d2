package core

import "strings"

// Matcher tests notes against a search term, ignoring case.
type Matcher struct {
	needle string
}

// NewMatcher prepares a case-insensitive matcher for term.
func NewMatcher(term string) Matcher {
	return Matcher{needle: strings.ToLower(term)}
}

// Match reports whether the note's title or content contains the term.
func (m Matcher) Match(n Note) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), m.needle) ||
		strings.Contains(strings.ToLower(n.Content), m.needle)
}
