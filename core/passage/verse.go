package passage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CedarCite/core/canon"
)

// Verse is the leaf node of the reference tree. Number is zero when
// the verse failed validation.
type Verse struct {
	errorList
	Number int
}

// newVerse validates a single verse token. The number must be
// positive, and when metadata and a chapter number are supplied it
// must not exceed that chapter's verse count. The chapter bound is
// only checked when the chapter itself is within the book; reporting
// nonexistent chapters is the chapter parser's job.
func newVerse(token string, md *canon.Record, chapter int) *Verse {
	v := &Verse{}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		v.AddError(fmt.Sprintf("The verse number '%s' is not valid", token))
		return v
	}
	if md != nil && chapter >= 1 && chapter <= md.Chapters() && n > md.Verses(chapter) {
		v.AddError(fmt.Sprintf("The verse '%d' does not exist for %s %d", n, md.Name, chapter))
		return v
	}
	v.Number = n
	return v
}

// Valid reports whether the verse number is present.
func (v *Verse) Valid() bool {
	return v.Number > 0
}

// Errors returns the verse's own messages; verses have no children.
func (v *Verse) Errors(includeChildren bool) []string {
	return v.ownErrors()
}

// HasErrors reports whether the verse recorded any message.
func (v *Verse) HasErrors() bool {
	return len(v.errs) > 0
}

// NoErrors is the negation of HasErrors.
func (v *Verse) NoErrors() bool {
	return len(v.errs) == 0
}

func (v *Verse) cleanChildren(chain bool) []Node {
	return nil
}

// ParseVerses parses a verse list such as "1", "2-5" or "1,3-4" into a
// collection of Verse nodes. When md and chapter are supplied each
// verse is checked against the chapter's verse count; pass nil and 0
// to skip validation. Malformed tokens contribute zero nodes but never
// abort the scan.
func ParseVerses(input string, md *canon.Record, chapter int) *Collection[*Verse] {
	col := NewCollection[*Verse]()
	s := sanitizeVerseInput(input)
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		tok, j := readNumber(s, i)
		if j < len(s) && s[j] == '-' && j+1 < len(s) && isDigit(s[j+1]) {
			endTok, k := readNumber(s, j+1)
			appendVerseRange(col, s[i:k], tok, endTok, md, chapter)
			i = k
			continue
		}
		col.Append(newVerse(tok, md, chapter))
		i = j
	}
	return col
}

// appendVerseRange expands "A-B" into one Verse per number in [A, B].
// A reversed or unparseable range contributes zero nodes and a
// collection-level error; so does a range that would expand past
// maxRangeSpan.
func appendVerseRange(col *Collection[*Verse], rangeTok, startTok, endTok string, md *canon.Record, chapter int) {
	a, errA := strconv.Atoi(startTok)
	b, errB := strconv.Atoi(endTok)
	if errA != nil || errB != nil || b < a {
		col.AddError(fmt.Sprintf("'%s' is an invalid range of verses", rangeTok))
		return
	}
	if b-a+1 > maxRangeSpan {
		col.AddError(fmt.Sprintf("'%s' expands to too many verses", rangeTok))
		return
	}
	for n := a; n <= b; n++ {
		col.Append(newVerse(strconv.Itoa(n), md, chapter))
	}
}

// ParseVersesFor parses a chapter's remainder. A chapter cited with no
// verse locator means the whole chapter when metadata is known, and
// just the first verse when it is not.
func ParseVersesFor(ch *Chapter) *Collection[*Verse] {
	if ch.RawRemainder != "" {
		return ParseVerses(ch.RawRemainder, ch.Metadata, ch.Number)
	}
	if ch.Metadata != nil {
		full := fmt.Sprintf("1-%d", ch.Metadata.Verses(ch.Number))
		return ParseVerses(full, ch.Metadata, ch.Number)
	}
	return ParseVerses("1", nil, 0)
}

// sanitizeVerseInput strips everything that is not a digit or list
// punctuation. Colons never legitimately appear at this level but are
// tolerated; the scanner skips them like any other separator.
func sanitizeVerseInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) || isListPunct(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
