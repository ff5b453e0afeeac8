package screening

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD and removes combining marks, so
// "Müller" and "Muller" normalize identically.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a name for comparison: diacritics stripped, every
// non-alphanumeric character collapsed to a single space, lowercased, trimmed.
// It is pure, deterministic, and idempotent; empty input yields "".
//
// Both ingestion and querying must use this same function, otherwise exact
// lookups silently stop matching.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		// Invalid UTF-8; fall back to the raw bytes rather than failing.
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := true // leading spaces are dropped
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			space = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			space = false
		default:
			if !space {
				b.WriteByte(' ')
				space = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// tokenize splits a name on runs of space, hyphen, and period into non-empty
// tokens. Used by token similarity and by stores building first-token indexes.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '.'
	})
}
