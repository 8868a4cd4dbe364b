// Package passage parses free-form scripture citation text such as
// "Gen. 1:15-18, 21; Matt 1" into a three-level Book → Chapter → Verse
// tree validated against canon metadata.
//
// Parsing never fails: malformed tokens become invalid nodes (or
// collection-level errors) and every node records its own problems.
// Callers inspect errors through Errors(), and may prune invalid
// branches with Collection.Clean without losing valid siblings.
//
// The matcher is a hand-written scanner rather than a grammar: at each
// position the alternatives are tried in a fixed priority order
// (chapter-with-verses, then range, then bare number) and the first
// match wins. That tie-break order is part of the observable contract.
package passage

import "strings"

// maxRangeSpan bounds how many nodes a single "A-B" token may expand
// to. Input like "1-999999999" fails with a collection error instead
// of exhausting memory.
const maxRangeSpan = 9999

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isListPunct reports whether c may appear inside a chapter/verse
// locator: ':' separates chapter from verses, ';' separates groups,
// ',' separates list entries, '-' marks ranges.
func isListPunct(c byte) bool {
	return c == ':' || c == ';' || c == ',' || c == '-'
}

// readNumber returns the digit run starting at i and the index just
// past it. The caller guarantees s[i] is a digit.
func readNumber(s string, i int) (string, int) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[i:j], j
}

// trimTrailingNonDigits strips incidental trailing punctuation from a
// captured remainder.
func trimTrailingNonDigits(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
}
