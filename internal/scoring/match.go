package scoring

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLengthDiff bounds the substring rule: "90" inside "90 degres"
// matches, "a" inside a long sentence does not. Tunable per deployment.
const DefaultMaxLengthDiff = 5

// Matcher decides whether a free-text answer is equivalent to a reference.
type Matcher struct {
	maxLenDiff int
}

type MatcherOption func(*Matcher)

// WithMaxLengthDiff overrides the substring length-difference bound.
func WithMaxLengthDiff(n int) MatcherOption {
	return func(m *Matcher) { m.maxLenDiff = n }
}

func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{maxLenDiff: DefaultMaxLengthDiff}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Equivalent normalizes both strings, then accepts on exact equality, or on
// one being a substring of the other with a length difference within the
// configured bound.
func (m *Matcher) Equivalent(answer, reference string) bool {
	a := Normalize(answer)
	b := Normalize(reference)

	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= m.maxLenDiff
}
