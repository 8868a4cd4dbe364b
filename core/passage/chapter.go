package passage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CedarCite/core/canon"
)

// Chapter is the middle node of the reference tree. It owns the verse
// collection parsed from its remainder. Number is zero and Children is
// nil when construction failed.
type Chapter struct {
	errorList
	Number       int
	RawRemainder string
	Metadata     *canon.Record
	Children     *Collection[*Verse]
}

// newChapter validates the chapter number against the book's chapter
// count and, on success, parses the verse remainder. An invalid
// chapter keeps nothing but its error: no number, no remainder, no
// children.
func newChapter(token, remainder string, md *canon.Record) *Chapter {
	ch := &Chapter{}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		ch.AddError(fmt.Sprintf("The chapter number '%s' is not valid", token))
		return ch
	}
	if md != nil && n > md.Chapters() {
		ch.AddError(fmt.Sprintf("Chapter '%d' does not exist for the book %s", n, md.Name))
		return ch
	}
	ch.Number = n
	ch.RawRemainder = remainder
	ch.Metadata = md
	ch.Children = ParseVersesFor(ch)
	return ch
}

// Valid reports whether the chapter number is present.
func (ch *Chapter) Valid() bool {
	return ch.Number > 0
}

// Errors returns the chapter's own messages, then its verses' when
// includeChildren is true.
func (ch *Chapter) Errors(includeChildren bool) []string {
	out := ch.ownErrors()
	if includeChildren && ch.Children != nil {
		out = append(out, ch.Children.Errors(includeChildren)...)
	}
	return out
}

// HasErrors reports whether the chapter or any of its verses recorded
// a message.
func (ch *Chapter) HasErrors() bool {
	return len(ch.Errors(true)) > 0
}

// NoErrors is the negation of HasErrors.
func (ch *Chapter) NoErrors() bool {
	return !ch.HasErrors()
}

func (ch *Chapter) cleanChildren(chain bool) []Node {
	if ch.Children == nil {
		return nil
	}
	return ch.Children.Clean(chain)
}

// ParseChapters parses a chapter list such as "1", "3-5" or
// "1:1,5,10;12" into a collection of Chapter nodes. Three alternatives
// are tried per scan position, in priority order: chapter-with-verses,
// chapter range, bare chapter. The first match wins.
func ParseChapters(input string, md *canon.Record) *Collection[*Chapter] {
	col := NewCollection[*Chapter]()
	s := sanitizeChapterInput(input)
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		tok, j := readNumber(s, i)

		// Chapter with a verse list: "12:1,5-7". The tail runs until
		// the next separator; incidental trailing punctuation is
		// stripped from it.
		if j < len(s) && s[j] == ':' && j+1 < len(s) && isVerseTailChar(s[j+1]) {
			k := j + 1
			for k < len(s) && isVerseTailChar(s[k]) {
				k++
			}
			tail := trimTrailingNonDigits(s[j+1 : k])
			col.Append(newChapter(tok, tail, md))
			i = k
			continue
		}

		// Chapter range: "3-5" expands to one node per chapter, each
		// with no remainder. A reversed range expands to nothing and,
		// unlike verse ranges, reports no error.
		if j+1 < len(s) && s[j] == '-' && isDigit(s[j+1]) {
			endTok, k := readNumber(s, j+1)
			appendChapterRange(col, s[i:k], tok, endTok, md)
			i = k
			continue
		}

		// Bare chapter.
		col.Append(newChapter(tok, "", md))
		i = j
	}
	return col
}

func appendChapterRange(col *Collection[*Chapter], rangeTok, startTok, endTok string, md *canon.Record) {
	a, errA := strconv.Atoi(startTok)
	b, errB := strconv.Atoi(endTok)
	if errA != nil || errB != nil || b < a {
		return
	}
	if b-a+1 > maxRangeSpan {
		col.AddError(fmt.Sprintf("'%s' expands to too many chapters", rangeTok))
		return
	}
	for n := a; n <= b; n++ {
		col.Append(newChapter(strconv.Itoa(n), "", md))
	}
}

// ParseChaptersFor parses a book's remainder. A book cited with no
// locator at all means chapter 1.
func ParseChaptersFor(b *Book) *Collection[*Chapter] {
	if b.RawRemainder == "" {
		return ParseChapters("1", b.Metadata)
	}
	return ParseChapters(b.RawRemainder, b.Metadata)
}

// isVerseTailChar reports whether c may appear in the verse list
// following "chapter:". Semicolons and colons end the tail: both start
// a new chapter group.
func isVerseTailChar(c byte) bool {
	return isDigit(c) || c == ',' || c == '-'
}

// sanitizeChapterInput prepares chapter input for scanning. Letter
// runs collapse to a single separator so stray book-name fragments do
// not merge adjacent digit groups; everything else that is not a digit
// or list punctuation is stripped; and a separator is forced in front
// of every digit run that leads into a colon, so a new
// chapter-with-verses group cannot be absorbed by the preceding verse
// list ("1:5,10,5:10" must split before the second 5).
func sanitizeChapterInput(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	prevLetter := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isLetter(c) {
			if !prevLetter {
				b.WriteByte(';')
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		if isDigit(c) || isListPunct(c) {
			b.WriteByte(c)
		}
	}
	s := b.String()

	var out strings.Builder
	out.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) && (i == 0 || !isDigit(s[i-1])) {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j < len(s) && s[j] == ':' {
				out.WriteByte(';')
			}
		}
		out.WriteByte(s[i])
	}
	return out.String()
}
