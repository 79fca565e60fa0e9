package extractor

import "strings"

// Match is one phrase occurrence in a token sequence. Start and End are token
// offsets, End exclusive.
type Match struct {
	Phrase string
	Start  int
	End    int
}

// PhraseMatcher finds whole-token occurrences of a fixed phrase list.
type PhraseMatcher struct {
	phrases map[string]struct{}
	maxLen  int
}

// NewPhraseMatcher builds a matcher over already normalized phrases. Empty
// phrases are ignored.
func NewPhraseMatcher(phrases []string) *PhraseMatcher {
	m := &PhraseMatcher{phrases: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		m.phrases[strings.Join(fields, " ")] = struct{}{}
		if len(fields) > m.maxLen {
			m.maxLen = len(fields)
		}
	}
	return m
}

// Len returns the number of distinct phrases.
func (m *PhraseMatcher) Len() int { return len(m.phrases) }

// First returns the match with the earliest start; among phrases starting at
// the same token the longest wins.
func (m *PhraseMatcher) First(tokens []string) (Match, bool) {
	for i := range tokens {
		if match, ok := m.longestAt(tokens, i); ok {
			return match, true
		}
	}
	return Match{}, false
}

// Any reports whether any phrase occurs in tokens.
func (m *PhraseMatcher) Any(tokens []string) bool {
	_, ok := m.First(tokens)
	return ok
}

func (m *PhraseMatcher) longestAt(tokens []string, i int) (Match, bool) {
	n := m.maxLen
	if remaining := len(tokens) - i; n > remaining {
		n = remaining
	}
	for ; n >= 1; n-- {
		phrase := strings.Join(tokens[i:i+n], " ")
		if _, ok := m.phrases[phrase]; ok {
			return Match{Phrase: phrase, Start: i, End: i + n}, true
		}
	}
	return Match{}, false
}
