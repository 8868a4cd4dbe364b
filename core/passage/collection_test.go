package passage

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/CedarCite/core/canon"
)

func TestCollectionClean(t *testing.T) {
	p := canon.Default()

	t.Run("demotes invalid items", func(t *testing.T) {
		col := ParseBooks("Genesis 1, Anathema 2", p)
		if col.Len() != 2 {
			t.Fatalf("len = %d, want 2", col.Len())
		}
		removed := col.Clean(false)
		if len(removed) != 1 {
			t.Fatalf("removed = %d nodes, want 1", len(removed))
		}
		if col.Len() != 1 || col.At(0).Name != "Genesis" {
			t.Errorf("items after Clean = %v, want [Genesis]", bookNames(col))
		}
		if len(col.InvalidItems()) != 1 {
			t.Errorf("invalid = %d nodes, want 1", len(col.InvalidItems()))
		}
		// The demoted node keeps its error and the collection still
		// reports it.
		want := "The book 'Anathema' could not be found"
		if got := col.Errors(true); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})

	t.Run("chain cascades child removals upward", func(t *testing.T) {
		col := ParseBooks("Genesis 1:1, 51:1", p)
		if col.Len() != 1 {
			t.Fatalf("len = %d, want 1", col.Len())
		}
		gen := col.At(0)
		if gen.Children.Len() != 2 {
			t.Fatalf("chapters = %d, want 2", gen.Children.Len())
		}

		removed := col.Clean(true)
		if len(removed) != 1 {
			t.Fatalf("removed = %d nodes, want 1", len(removed))
		}
		ch, ok := removed[0].(*Chapter)
		if !ok {
			t.Fatalf("removed[0] is %T, want *Chapter", removed[0])
		}
		if ch.Valid() {
			t.Error("cascaded node should be invalid")
		}
		if gen.Children.Len() != 1 || gen.Children.At(0).Number != 1 {
			t.Errorf("chapters after Clean = %v, want [1]", chapterNumbers(gen.Children))
		}
		// The cascaded chapter lands in the book collection's invalid
		// sequence as well as its own parent's.
		if len(col.InvalidItems()) != 1 {
			t.Errorf("book-level invalid = %d, want 1", len(col.InvalidItems()))
		}
		if len(gen.Children.InvalidItems()) != 1 {
			t.Errorf("chapter-level invalid = %d, want 1", len(gen.Children.InvalidItems()))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		col := ParseBooks("Genesis 1:1, 51:1", p)
		col.Clean(true)
		if removed := col.Clean(true); len(removed) != 0 {
			t.Errorf("second Clean removed %d nodes, want 0", len(removed))
		}
	})

	t.Run("without chain children keep invalid nodes", func(t *testing.T) {
		col := ParseBooks("Genesis 1:1, 51:1", p)
		col.Clean(false)
		gen := col.At(0)
		if gen.Children.Len() != 2 {
			t.Errorf("chapters = %d, want 2 (chain off)", gen.Children.Len())
		}
	})
}

func TestCollectionErrorsDedupe(t *testing.T) {
	col := ParseChapters("0;0", nil)
	if col.Len() != 2 {
		t.Fatalf("len = %d, want 2", col.Len())
	}
	got := col.Errors(true)
	want := []string{"The chapter number '0' is not valid"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("errors = %v, want %v", got, want)
	}
}

func TestCollectionAccessors(t *testing.T) {
	col := ParseVerses("3,7,9", nil, 0)
	if col.IsEmpty() {
		t.Fatal("collection should not be empty")
	}
	if col.First().Number != 3 || col.Last().Number != 9 {
		t.Errorf("bounds = %d..%d, want 3..9", col.First().Number, col.Last().Number)
	}
	if col.At(1).Number != 7 {
		t.Errorf("At(1) = %d, want 7", col.At(1).Number)
	}

	empty := NewCollection[*Verse]()
	if !empty.IsEmpty() {
		t.Error("new collection should be empty")
	}
	if empty.First() != nil || empty.Last() != nil {
		t.Error("First/Last on empty collection should be nil")
	}
}

func TestCollectionUnionDifference(t *testing.T) {
	a := ParseVerses("1-3", nil, 0)
	b := ParseVerses("3-5", nil, 0)

	t.Run("union keeps duplicates and order", func(t *testing.T) {
		u := a.Union(b.Items())
		if got := verseNumbers(u); !reflect.DeepEqual(got, []int{1, 2, 3, 3, 4, 5}) {
			t.Errorf("union = %v, want [1 2 3 3 4 5]", got)
		}
		// Source collections are untouched.
		if a.Len() != 3 || b.Len() != 3 {
			t.Error("union must not mutate its operands")
		}
	})

	t.Run("difference is by identity not number", func(t *testing.T) {
		d := a.Difference(b.Items())
		if got := verseNumbers(d); !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Errorf("difference = %v, want [1 2 3]", got)
		}
		d2 := a.Difference(a.Items()[:1])
		if got := verseNumbers(d2); !reflect.DeepEqual(got, []int{2, 3}) {
			t.Errorf("difference = %v, want [2 3]", got)
		}
	})

	t.Run("collection errors carry over", func(t *testing.T) {
		bad := ParseVerses("5-2", nil, 0)
		u := bad.Union(a.Items())
		want := []string{"'5-2' is an invalid range of verses"}
		if got := u.Errors(false); !reflect.DeepEqual(got, want) {
			t.Errorf("errors = %v, want %v", got, want)
		}
	})
}

func TestNodeErrorTracking(t *testing.T) {
	v := &Verse{Number: 4}
	if v.HasErrors() {
		t.Fatal("fresh verse should have no errors")
	}
	v.AddError("first")
	v.AddError("second")
	if got := v.Errors(false); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("errors = %v, want [first second]", got)
	}
	v.ClearErrors()
	if !v.NoErrors() {
		t.Error("ClearErrors should remove everything")
	}
}
