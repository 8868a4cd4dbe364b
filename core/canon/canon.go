// Package canon provides the canonical book metadata consumed by the
// passage parser: book names, abbreviations and per-chapter verse
// counts. The built-in table covers the 66-book Protestant canon with
// KJV verse counts; alternative tables can be loaded from JSON, XML or
// SQLite sources.
package canon

import (
	"strings"
	"unicode"
)

// Record describes one canonical book. Records are immutable once
// constructed; parser nodes hold shared read-only references to them.
type Record struct {
	Name               string   `json:"name"`
	ShortName          string   `json:"short_name"`
	Aliases            []string `json:"aliases,omitempty"`
	ChapterVerseCounts []int    `json:"chapter_verse_counts"`
}

// Chapters returns the number of chapters in the book.
func (r *Record) Chapters() int {
	return len(r.ChapterVerseCounts)
}

// Verses returns the verse count of the given 1-indexed chapter, or 0
// when the chapter is out of range.
func (r *Record) Verses(chapter int) int {
	if chapter < 1 || chapter > len(r.ChapterVerseCounts) {
		return 0
	}
	return r.ChapterVerseCounts[chapter-1]
}

// TotalVerses returns the verse count of the whole book.
func (r *Record) TotalVerses() int {
	total := 0
	for _, n := range r.ChapterVerseCounts {
		total += n
	}
	return total
}

// Provider resolves a raw book token to its canonical record. Key
// normalization is the provider's responsibility; callers pass tokens
// through exactly as extracted.
type Provider interface {
	Lookup(key string) (*Record, bool)
}

// Normalize lowercases a lookup key and strips whitespace and periods,
// so "Gen.", "gen" and " GEN " resolve identically.
func Normalize(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if unicode.IsSpace(r) || r == '.' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Table is an immutable lookup table over a set of records. It
// implements Provider.
type Table struct {
	records []*Record
	index   map[string]*Record
}

// NewTable indexes records by normalized name, short name and aliases.
// On key collisions the earlier record wins.
func NewTable(records []*Record) *Table {
	t := &Table{
		records: records,
		index:   make(map[string]*Record, len(records)*4),
	}
	for _, rec := range records {
		t.add(rec.Name, rec)
		t.add(rec.ShortName, rec)
		for _, alias := range rec.Aliases {
			t.add(alias, rec)
		}
	}
	return t
}

func (t *Table) add(key string, rec *Record) {
	key = Normalize(key)
	if key == "" {
		return
	}
	if _, exists := t.index[key]; !exists {
		t.index[key] = rec
	}
}

// Lookup implements Provider.
func (t *Table) Lookup(key string) (*Record, bool) {
	rec, ok := t.index[Normalize(key)]
	return rec, ok
}

// Records returns the table's records in canonical order.
func (t *Table) Records() []*Record {
	return t.records
}

// Len returns the number of books in the table.
func (t *Table) Len() int {
	return len(t.records)
}
