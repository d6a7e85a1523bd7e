package viewport

import (
	"testing"

	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/highlight"
)

func TestRenderLinesPrefersCacheOverFallback(t *testing.T) {
	buf := buffer.NewWithText("func f() {}\nplain\n")
	buf.Cache().Put(0, []buffer.Token{{Start: 0, End: 4, Style: highlight.StyleKeyword}}, 0, 0)

	r := NewRenderer(highlight.NewHighlighter())
	lines := r.RenderLines(buf, coretext.LineRange{Start: 0, End: 2}, "go")

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !lines[0].FromCache {
		t.Error("line 0 should be served from cache")
	}
	if lines[1].FromCache {
		t.Error("line 1 has no cache entry and should use the fallback")
	}
}

func TestSelectionRectsSpanMultipleLines(t *testing.T) {
	buf := buffer.NewWithText("abc\ndef\nghi\n")
	r := NewRenderer(highlight.NewHighlighter())
	m := NewMetrics(10, 20)

	sel := coretext.Region{A: 1, B: 6} // "bc\nde"
	rects := r.SelectionRects(buf, m, sel)

	if len(rects) != 2 {
		t.Fatalf("len(rects) = %d, want 2", len(rects))
	}
	if rects[0].Line != 0 || rects[1].Line != 1 {
		t.Errorf("rects = %+v, want lines 0 and 1", rects)
	}
}

func TestCompositionPreviewOnlyWhenComposing(t *testing.T) {
	buf := buffer.New()
	p := NewInputPipeline(buf)
	r := NewRenderer(highlight.NewHighlighter())
	m := NewMetrics(10, 20)

	if _, ok := r.CompositionPreview(p, m, ""); ok {
		t.Error("CompositionPreview returned ok=true while Idle")
	}

	p.CompositionStart()
	p.CompositionUpdate("x")
	overlay, ok := r.CompositionPreview(p, m, "")
	if !ok || overlay.Text != "x" {
		t.Errorf("CompositionPreview = %+v, ok=%v; want overlay text \"x\"", overlay, ok)
	}
}
