package passage

import (
	"fmt"

	"github.com/FocuswithJustin/CedarCite/core/canon"
)

// Book is the top-level node of the reference tree. Name, ShortName
// and Metadata come from the canon record the raw token resolved to;
// all fields stay zero when the lookup failed.
type Book struct {
	errorList
	Name         string
	ShortName    string
	RawRemainder string
	Metadata     *canon.Record
	Children     *Collection[*Chapter]
}

// newBook resolves the raw name token through the provider and, on
// success, parses the chapter remainder.
func newBook(name, remainder string, p canon.Provider) *Book {
	b := &Book{}
	rec, ok := p.Lookup(name)
	if !ok {
		b.AddError(fmt.Sprintf("The book '%s' could not be found", name))
		return b
	}
	b.Name = rec.Name
	b.ShortName = rec.ShortName
	b.RawRemainder = remainder
	b.Metadata = rec
	b.Children = ParseChaptersFor(b)
	return b
}

// Valid reports whether the book resolved to a canon record.
func (b *Book) Valid() bool {
	return b.Name != ""
}

// Errors returns the book's own messages, then its chapters' when
// includeChildren is true.
func (b *Book) Errors(includeChildren bool) []string {
	out := b.ownErrors()
	if includeChildren && b.Children != nil {
		out = append(out, b.Children.Errors(includeChildren)...)
	}
	return out
}

// HasErrors reports whether the book or anything below it recorded a
// message.
func (b *Book) HasErrors() bool {
	return len(b.Errors(true)) > 0
}

// NoErrors is the negation of HasErrors.
func (b *Book) NoErrors() bool {
	return !b.HasErrors()
}

func (b *Book) cleanChildren(chain bool) []Node {
	if b.Children == nil {
		return nil
	}
	return b.Children.Clean(chain)
}

// ParseBooks parses a whole passage such as "Gen. 1:15-18, 21; Matt 1"
// into a collection of Book nodes resolved through the provider. A
// passage with no recognizable book token yields an empty collection
// carrying a single collection-level error.
func ParseBooks(text string, p canon.Provider) *Collection[*Book] {
	col := NewCollection[*Book]()
	s := sanitizeBookInput(text)
	for i := 0; i < len(s); {
		name, j := readBookName(s, i)
		if name == "" {
			i++
			continue
		}

		// The remainder is the run of non-letters after the name. When
		// a letter follows the run, the run's last character belongs
		// to the next book's name ("Gen1:1,2Sam3": the 2 starts
		// "2Sam"), so it is handed back to the scanner.
		k := j
		for k < len(s) && !isLetter(s[k]) {
			k++
		}
		end := k
		if k < len(s) && end > j {
			end--
		}
		remainder := trimTrailingNonDigits(s[j:end])
		col.Append(newBook(name, remainder, p))
		i = end
	}
	if col.Len() == 0 {
		col.AddError(fmt.Sprintf("'%s' does not contain any books", text))
	}
	return col
}

// readBookName matches an optional single leading digit followed by
// one or more letters ("Gen", "2Sam"). It returns the empty string
// when position i does not start a name.
func readBookName(s string, i int) (string, int) {
	start := i
	if i < len(s) && isDigit(s[i]) {
		if i+1 >= len(s) || !isLetter(s[i+1]) {
			return "", start
		}
		i++
	}
	if i >= len(s) || !isLetter(s[i]) {
		return "", start
	}
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	return s[start:i], i
}

// sanitizeBookInput strips everything that is not a letter, digit or
// list punctuation. Periods and whitespace disappear here, which is
// why "Gen." and "Gen" tokenize identically.
func sanitizeBookInput(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isLetter(c) || isDigit(c) || isListPunct(c) {
			b = append(b, c)
		}
	}
	return string(b)
}
