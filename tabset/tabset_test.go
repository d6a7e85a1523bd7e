package tabset

import (
	"testing"

	"github.com/zylacode/editorcore/buffer"
)

func TestNewTabSetHasOneActiveUntitledTab(t *testing.T) {
	ts := New(800, 20, 2)
	if ts.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ts.Len())
	}
	if ts.Active() == nil {
		t.Fatal("Active() = nil on a fresh TabSet")
	}
	if ts.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", ts.ActiveIndex())
	}
}

func TestClosingLastTabCreatesFreshUntitledTab(t *testing.T) {
	ts := New(800, 20, 2)
	first := ts.Active()

	ts.Close(0)

	if ts.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after closing the only tab", ts.Len())
	}
	if ts.Active() == first {
		t.Error("Active() still returns the closed tab")
	}
	if ts.ActiveIndex() >= ts.Len() {
		t.Errorf("ActiveIndex() = %d violates active_index < len invariant (len=%d)", ts.ActiveIndex(), ts.Len())
	}
}

func TestCloseMaintainsActiveIndexInvariant(t *testing.T) {
	ts := New(800, 20, 2)
	ts.NewTab()
	ts.NewTab()
	ts.SetActive(2)

	ts.Close(0)

	if ts.ActiveIndex() >= ts.Len() {
		t.Errorf("ActiveIndex() = %d violates invariant (len=%d)", ts.ActiveIndex(), ts.Len())
	}
	if ts.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1 after removing a tab before the active one", ts.ActiveIndex())
	}
}

func TestEachTabHasIndependentCursorAndBuffer(t *testing.T) {
	ts := New(800, 20, 2)
	a := ts.Active()
	a.Pipeline.HandleInput("x")

	b := ts.NewTab()
	if b.Buffer.String() != "" {
		t.Errorf("new tab's buffer = %q, want empty", b.Buffer.String())
	}
	if a.Buffer.String() != "x" {
		t.Errorf("first tab's buffer = %q, want %q", a.Buffer.String(), "x")
	}
	if a.Cursor() != (buffer.Cursor{Line: 0, Col: 1}) {
		t.Errorf("first tab's cursor = %+v, want {0 1}", a.Cursor())
	}
	if b.Cursor() != (buffer.Cursor{}) {
		t.Errorf("new tab's cursor = %+v, want {0 0}", b.Cursor())
	}
}
