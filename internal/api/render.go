package api

import (
	"github.com/FocuswithJustin/CedarCite/core/canon"
	"github.com/FocuswithJustin/CedarCite/core/passage"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// PassageResult is the JSON rendering of a parsed passage tree.
type PassageResult struct {
	Passage string     `json:"passage"`
	Books   []BookInfo `json:"books"`
	Removed int        `json:"removed,omitempty"`
	Errors  []string   `json:"errors,omitempty"`
}

// BookInfo describes one parsed book.
type BookInfo struct {
	Name      string        `json:"name"`
	ShortName string        `json:"short_name,omitempty"`
	Chapters  []ChapterInfo `json:"chapters,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// ChapterInfo describes one parsed chapter and its verse numbers.
type ChapterInfo struct {
	Number int      `json:"number"`
	Verses []int    `json:"verses,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// BookSummary describes one canon book for the /books endpoint.
type BookSummary struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Chapters  int    `json:"chapters"`
	Verses    int    `json:"verses"`
}

// BuildPassageResult renders a parsed book collection. With clean set,
// invalid nodes are pruned first and counted; their errors remain
// visible in the aggregate list either way.
func BuildPassageResult(text string, books *passage.Collection[*passage.Book], clean bool) PassageResult {
	result := PassageResult{
		Passage: text,
		Errors:  books.Errors(true),
	}
	if clean {
		result.Removed = len(books.Clean(true))
	}
	for _, b := range books.Items() {
		result.Books = append(result.Books, buildBookInfo(b))
	}
	return result
}

func buildBookInfo(b *passage.Book) BookInfo {
	info := BookInfo{
		Name:      b.Name,
		ShortName: b.ShortName,
		Errors:    b.Errors(false),
	}
	if b.Children == nil {
		return info
	}
	for _, ch := range b.Children.Items() {
		info.Chapters = append(info.Chapters, buildChapterInfo(ch))
	}
	return info
}

func buildChapterInfo(ch *passage.Chapter) ChapterInfo {
	info := ChapterInfo{
		Number: ch.Number,
		Errors: ch.Errors(false),
	}
	if ch.Children == nil {
		return info
	}
	for _, v := range ch.Children.Items() {
		if v.Number > 0 {
			info.Verses = append(info.Verses, v.Number)
		}
	}
	return info
}

// recordLister is satisfied by canon.Table; providers that cannot
// enumerate their books yield an empty /books list.
type recordLister interface {
	Records() []*canon.Record
}

func (s *Server) bookSummaries() []BookSummary {
	lister, ok := s.canon.(recordLister)
	if !ok {
		return nil
	}
	var out []BookSummary
	for _, rec := range lister.Records() {
		out = append(out, BookSummary{
			Name:      rec.Name,
			ShortName: rec.ShortName,
			Chapters:  rec.Chapters(),
			Verses:    rec.TotalVerses(),
		})
	}
	return out
}
