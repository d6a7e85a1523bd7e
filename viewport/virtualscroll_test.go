package viewport

import "testing"

func TestVisibleRangeClampsOverscroll(t *testing.T) {
	vs := NewVirtualScroll(200, 20, 0, 10)
	vs.SetScrollTop(100000)

	r := vs.VisibleRange()
	if r.End > 10 {
		t.Errorf("VisibleRange().End = %d, want <= 10", r.End)
	}
	if r.Start < 0 {
		t.Errorf("VisibleRange().Start = %d, want >= 0", r.Start)
	}
}

func TestEmptyDocumentYieldsEmptyRanges(t *testing.T) {
	vs := NewVirtualScroll(200, 20, 2, 0)
	if !vs.VisibleRange().Empty() {
		t.Errorf("VisibleRange() = %+v, want empty", vs.VisibleRange())
	}
	if !vs.PrefetchRange().Empty() {
		t.Errorf("PrefetchRange() = %+v, want empty", vs.PrefetchRange())
	}
}

func TestSetTotalLinesRecomputesPrefetchRange(t *testing.T) {
	vs := NewVirtualScroll(200, 20, 0, 1000)
	vs.SetScrollTop(0)
	vs.SetScrollTop(400) // 20 lines in one tick -> velocity 20, above threshold

	if vs.PrefetchRange().Empty() {
		t.Fatal("expected a non-empty prefetch range after a fast scroll")
	}

	vs.SetTotalLines(5)
	pr := vs.PrefetchRange()
	if pr.End > 5 || pr.Start > 5 {
		t.Errorf("PrefetchRange() = %+v after shrinking document to 5 lines, want bounds <= 5", pr)
	}
}

func TestLowVelocityYieldsEmptyPrefetch(t *testing.T) {
	vs := NewVirtualScroll(200, 20, 0, 1000)
	vs.SetScrollTop(20)
	vs.SetScrollTop(21)
	if !vs.PrefetchRange().Empty() {
		t.Errorf("PrefetchRange() = %+v, want empty for low velocity", vs.PrefetchRange())
	}
}

func TestLineAtYClampsToLastLine(t *testing.T) {
	vs := NewVirtualScroll(200, 20, 0, 5)
	if got := vs.LineAtY(100000); got != 4 {
		t.Errorf("LineAtY(100000) = %d, want 4", got)
	}
}
