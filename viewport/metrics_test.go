package viewport

import "testing"

func TestXFromColAccountsForWideRunes(t *testing.T) {
	m := NewMetrics(10, 20)
	x := m.XFromCol("a日b", 2)
	want := 10.0 + 20.0 // "a" (ASCII) + "日" (wide, 2*W)
	if x != want {
		t.Errorf("XFromCol = %v, want %v", x, want)
	}
}

func TestColFromXHalfAdvanceBias(t *testing.T) {
	m := NewMetrics(10, 20)
	// Clicking at x=4 (less than half of the first char's width) should
	// land on column 0; clicking at x=6 (past the half-advance bias)
	// should land on column 1.
	if got := m.ColFromX("abc", 4); got != 0 {
		t.Errorf("ColFromX(4) = %d, want 0", got)
	}
	if got := m.ColFromX("abc", 6); got != 1 {
		t.Errorf("ColFromX(6) = %d, want 1", got)
	}
}

func TestColFromXPastEndReturnsLineLength(t *testing.T) {
	m := NewMetrics(10, 20)
	if got := m.ColFromX("abc", 10000); got != 3 {
		t.Errorf("ColFromX(10000) = %d, want 3", got)
	}
}
