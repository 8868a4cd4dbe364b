package passage

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/CedarCite/core/canon"
)

func genesis(t *testing.T) *canon.Record {
	t.Helper()
	rec, ok := canon.Default().Lookup("Genesis")
	if !ok {
		t.Fatal("Genesis not found in default canon")
	}
	return rec
}

func verseNumbers(col *Collection[*Verse]) []int {
	var out []int
	for _, v := range col.Items() {
		out = append(out, v.Number)
	}
	return out
}

func TestParseVerses(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNums   []int
		wantErrors []string
	}{
		{
			name:     "single verse",
			input:    "1",
			wantNums: []int{1},
		},
		{
			name:     "comma list",
			input:    "1,3,5",
			wantNums: []int{1, 3, 5},
		},
		{
			name:     "range",
			input:    "2-5",
			wantNums: []int{2, 3, 4, 5},
		},
		{
			name:     "list with range",
			input:    "15-18,21",
			wantNums: []int{15, 16, 17, 18, 21},
		},
		{
			name:       "reversed range",
			input:      "5-2",
			wantNums:   nil,
			wantErrors: []string{"'5-2' is an invalid range of verses"},
		},
		{
			name:       "reversed range keeps valid siblings",
			input:      "1,5-2,9",
			wantNums:   []int{1, 9},
			wantErrors: []string{"'5-2' is an invalid range of verses"},
		},
		{
			name:       "oversized range",
			input:      "1-999999999",
			wantNums:   nil,
			wantErrors: []string{"'1-999999999' expands to too many verses"},
		},
		{
			name:     "garbage between numbers",
			input:    "1;;3",
			wantNums: []int{1, 3},
		},
		{
			name:     "empty input",
			input:    "",
			wantNums: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := ParseVerses(tt.input, nil, 0)
			if got := verseNumbers(col); !reflect.DeepEqual(got, tt.wantNums) {
				t.Errorf("numbers = %v, want %v", got, tt.wantNums)
			}
			got := col.Errors(true)
			if len(got) == 0 && len(tt.wantErrors) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.wantErrors) {
				t.Errorf("errors = %v, want %v", got, tt.wantErrors)
			}
		})
	}
}

func TestParseVersesWithMetadata(t *testing.T) {
	gen := genesis(t)

	t.Run("last verse of chapter is valid", func(t *testing.T) {
		col := ParseVerses("31", gen, 1)
		if col.HasErrors() {
			t.Fatalf("unexpected errors: %v", col.Errors(true))
		}
		if col.Len() != 1 || col.At(0).Number != 31 {
			t.Fatalf("got %v, want [31]", verseNumbers(col))
		}
	})

	t.Run("verse past chapter end is invalid", func(t *testing.T) {
		col := ParseVerses("32", gen, 1)
		if col.Len() != 1 {
			t.Fatalf("len = %d, want 1", col.Len())
		}
		v := col.At(0)
		if v.Valid() {
			t.Error("verse 32 should be invalid in Genesis 1")
		}
		want := "The verse '32' does not exist for Genesis 1"
		if got := col.Errors(true); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})

	t.Run("zero verse", func(t *testing.T) {
		col := ParseVerses("0", gen, 1)
		if col.Len() != 1 || col.At(0).Valid() {
			t.Fatal("verse 0 should produce one invalid node")
		}
		want := "The verse number '0' is not valid"
		if got := col.At(0).Errors(false); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})

	t.Run("out-of-range chapter skips verse bound check", func(t *testing.T) {
		col := ParseVerses("7", gen, 51)
		if col.HasErrors() {
			t.Fatalf("unexpected errors: %v", col.Errors(true))
		}
	})
}

func TestParseVersesFor(t *testing.T) {
	gen := genesis(t)

	t.Run("remainder wins", func(t *testing.T) {
		ch := &Chapter{Number: 1, RawRemainder: "1-3", Metadata: gen}
		col := ParseVersesFor(ch)
		if got := verseNumbers(col); !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Errorf("numbers = %v, want [1 2 3]", got)
		}
	})

	t.Run("no remainder expands whole chapter", func(t *testing.T) {
		ch := &Chapter{Number: 1, Metadata: gen}
		col := ParseVersesFor(ch)
		if col.Len() != 31 {
			t.Errorf("len = %d, want 31", col.Len())
		}
		if col.First().Number != 1 || col.Last().Number != 31 {
			t.Errorf("bounds = %d..%d, want 1..31", col.First().Number, col.Last().Number)
		}
	})

	t.Run("no remainder and no metadata means verse one", func(t *testing.T) {
		ch := &Chapter{Number: 1}
		col := ParseVersesFor(ch)
		if got := verseNumbers(col); !reflect.DeepEqual(got, []int{1}) {
			t.Errorf("numbers = %v, want [1]", got)
		}
	})
}
