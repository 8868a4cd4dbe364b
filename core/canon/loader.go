package canon

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// LoadJSON reads a canon table from its JSON representation: an array
// of records with name, short_name, aliases and chapter_verse_counts.
func LoadJSON(r io.Reader) (*Table, error) {
	var records []*Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding canon JSON: %w", err)
	}
	return buildTable(records)
}

// buildTable validates loaded records before indexing them.
func buildTable(records []*Record) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("canon table has no books")
	}
	for _, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("canon record without a name")
		}
		if len(rec.ChapterVerseCounts) == 0 {
			return nil, fmt.Errorf("book %s has no chapters", rec.Name)
		}
		for i, n := range rec.ChapterVerseCounts {
			if n < 1 {
				return nil, fmt.Errorf("book %s chapter %d has verse count %d", rec.Name, i+1, n)
			}
		}
	}
	return NewTable(records), nil
}

// LoadFile loads a canon table from a JSON file, transparently
// decompressing files with an .xz suffix.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening canon file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading xz canon file: %w", err)
		}
		r = xr
	}
	return LoadJSON(r)
}

// Checksum returns the hex-encoded BLAKE3 hash of a canon file.
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading canon file: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// LoadFileChecked verifies the file's BLAKE3 hash before loading it.
func LoadFileChecked(path, wantSum string) (*Table, error) {
	sum, err := Checksum(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(sum, wantSum) {
		return nil, fmt.Errorf("canon file checksum mismatch: got %s, want %s", sum, wantSum)
	}
	return LoadFile(path)
}
