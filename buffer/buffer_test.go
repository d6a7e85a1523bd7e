package buffer

import "testing"

func TestInsertClampsToBounds(t *testing.T) {
	b := NewWithText("hello")
	b.Insert(1000, " world", Cursor{}, Cursor{})
	if got := b.String(); got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
	if !b.Modified() {
		t.Error("Modified() = false after insert")
	}
	if b.Version() != 1 {
		t.Errorf("Version() = %d, want 1", b.Version())
	}
}

func TestRemoveClampsToBounds(t *testing.T) {
	b := NewWithText("hello")
	b.Remove(-5, 1000, Cursor{}, Cursor{})
	if got := b.String(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestInsertNoOpOnEmptyTextLeavesVersionUnchanged(t *testing.T) {
	b := NewWithText("hello")
	b.Insert(2, "", Cursor{}, Cursor{})
	if b.Version() != 0 {
		t.Errorf("Version() = %d, want 0 for no-op insert", b.Version())
	}
	if b.Modified() {
		t.Error("Modified() = true after no-op insert")
	}
}

func TestMultilineInsertInvalidatesCache(t *testing.T) {
	b := NewWithText("aaa\nbbb\nccc\n")
	b.Cache().Put(0, []Token{{Start: 0, End: 3, Style: "x"}}, 0, 0)
	b.Cache().Put(1, []Token{{Start: 0, End: 3, Style: "x"}}, 0, 0)
	b.Cache().Put(2, []Token{{Start: 0, End: 3, Style: "x"}}, 0, 0)

	b.Insert(0, "X\nY\n", Cursor{}, Cursor{Line: 2})

	if b.Cache().Has(0) {
		t.Error("line 0 still cached after an insert that affects it")
	}
	if b.Cache().Has(2) {
		t.Error("line 2 still cached after a multiline insert")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewWithText("hello")
	before := Cursor{Line: 0, Col: 5}
	after := Cursor{Line: 0, Col: 11}
	b.Insert(5, " world", before, after)

	if got := b.String(); got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}

	cur, ok := b.Undo()
	if !ok {
		t.Fatal("Undo() returned ok=false")
	}
	if cur != before {
		t.Errorf("Undo() cursor = %+v, want %+v", cur, before)
	}
	if got := b.String(); got != "hello" {
		t.Errorf("after undo, got %q, want %q", got, "hello")
	}

	cur, ok = b.Redo()
	if !ok {
		t.Fatal("Redo() returned ok=false")
	}
	if cur != after {
		t.Errorf("Redo() cursor = %+v, want %+v", cur, after)
	}
	if got := b.String(); got != "hello world" {
		t.Errorf("after redo, got %q, want %q", got, "hello world")
	}
}

func TestUndoOnEmptyHistoryIsNoOp(t *testing.T) {
	b := NewWithText("hello")
	if _, ok := b.Undo(); ok {
		t.Error("Undo() on fresh buffer returned ok=true")
	}
}

func TestNewEditClearsRedoStack(t *testing.T) {
	b := NewWithText("hello")
	b.Insert(5, " world", Cursor{}, Cursor{})
	b.Undo()
	b.Insert(5, "!", Cursor{}, Cursor{})
	if b.UndoHistory().CanRedo() {
		t.Error("CanRedo() = true after a fresh edit following an undo")
	}
}

func TestLineSegmentClampsColumns(t *testing.T) {
	b := NewWithText("abcdef\n")
	seg, err := b.LineSegment(0, 2, 1000)
	if err != nil {
		t.Fatalf("LineSegment returned error: %v", err)
	}
	if seg != "cdef\n" {
		t.Errorf("got %q, want %q", seg, "cdef\n")
	}
}

func TestLineSegmentMissingLineFails(t *testing.T) {
	b := NewWithText("one line")
	if _, err := b.LineSegment(5, 0, 1); err == nil {
		t.Error("expected error for missing line")
	}
}

func TestSnapshotIsUnaffectedByLaterEdits(t *testing.T) {
	b := NewWithText("hello")
	snap := b.Snapshot()
	b.Insert(5, " world", Cursor{}, Cursor{})
	if got := snap.String(); got != "hello" {
		t.Errorf("snapshot mutated: got %q, want %q", got, "hello")
	}
}

func TestTrimCacheDropsOutOfMarginLines(t *testing.T) {
	b := NewWithText("a\nb\nc\nd\ne\nf\n")
	for i := 0; i < 6; i++ {
		b.Cache().Put(i, []Token{{Start: 0, End: 1, Style: "x"}}, 0, 0)
	}
	b.TrimCache(2, 3, 1)
	if b.Cache().Has(0) || b.Cache().Has(5) {
		t.Error("expected lines outside [1,4] to be trimmed")
	}
	if !b.Cache().Has(1) || !b.Cache().Has(4) {
		t.Error("expected lines within [1,4] to survive")
	}
}

func TestRowColTextPointRoundTrip(t *testing.T) {
	b := NewWithText("one\ntwo\nthree\n")
	for _, point := range []int{0, 4, 8, 13} {
		row, col := b.RowCol(point)
		if got := b.TextPoint(row, col); got != point {
			t.Errorf("TextPoint(RowCol(%d)) = %d, want %d", point, got, point)
		}
	}
}
