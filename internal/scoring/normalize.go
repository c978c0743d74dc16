package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unitSymbols are stripped before comparison so "90°" and "90" compare equal.
var unitSymbols = strings.NewReplacer("°", "", "%", "", "€", "", "$", "", "£", "", "¥", "")

// Normalize canonicalizes free text for comparison: lower-case, trim,
// strip diacritics (NFD then drop combining marks), drop unit/currency
// symbols, collapse whitespace runs. Idempotent and never fails.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	s = unitSymbols.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
