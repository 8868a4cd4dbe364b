package canon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

const sampleJSON = `[
  {"name": "Genesis", "short_name": "Gen", "aliases": ["ge"], "chapter_verse_counts": [31, 25, 24]},
  {"name": "Exodus", "short_name": "Exod", "chapter_verse_counts": [22, 25]}
]`

func TestLoadJSON(t *testing.T) {
	table, err := LoadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	rec, ok := table.Lookup("ge")
	if !ok || rec.Name != "Genesis" {
		t.Errorf("alias lookup = %v %v", rec, ok)
	}
	if rec.Verses(3) != 24 {
		t.Errorf("Genesis 3 verses = %d, want 24", rec.Verses(3))
	}
}

func TestLoadJSONRejectsBadTables(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{"},
		{"empty array", "[]"},
		{"missing name", `[{"short_name": "X", "chapter_verse_counts": [1]}]`},
		{"no chapters", `[{"name": "X", "chapter_verse_counts": []}]`},
		{"zero verse count", `[{"name": "X", "chapter_verse_counts": [3, 0]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain json", func(t *testing.T) {
		path := filepath.Join(dir, "canon.json")
		if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
			t.Fatal(err)
		}
		table, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if table.Len() != 2 {
			t.Errorf("Len = %d, want 2", table.Len())
		}
	})

	t.Run("xz compressed", func(t *testing.T) {
		path := filepath.Join(dir, "canon.json.xz")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		xw, err := xz.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := xw.Write([]byte(sampleJSON)); err != nil {
			t.Fatal(err)
		}
		if err := xw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		table, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := table.Lookup("Exodus"); !ok {
			t.Error("Exodus should resolve from the compressed table")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestChecksumAndLoadFileChecked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canon.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := Checksum(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 64 {
		t.Fatalf("checksum length = %d, want 64 hex chars", len(sum))
	}

	if _, err := LoadFileChecked(path, sum); err != nil {
		t.Errorf("matching checksum should load: %v", err)
	}
	if _, err := LoadFileChecked(path, strings.ToUpper(sum)); err != nil {
		t.Errorf("checksum compare should be case-insensitive: %v", err)
	}
	if _, err := LoadFileChecked(path, strings.Repeat("0", 64)); err == nil {
		t.Error("wrong checksum should fail")
	}
}
