package viewport

import (
	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/highlight"
)

// RenderedLine is one line materialized for display: its text, its token
// stream (cached or a synchronous fallback), and whether the tokens came
// from the cache.
type RenderedLine struct {
	LineNumber int
	Text       string
	Tokens     []buffer.Token
	FromCache  bool
}

// CursorRect places the blinking cursor in pixel space.
type CursorRect struct {
	X, Y float64
}

// SelectionRect is one rectangle of a (possibly multi-line) selection.
type SelectionRect struct {
	Line   int
	XStart float64
	XEnd   float64
}

// CompositionOverlay is the not-yet-committed IME preview, rendered
// underlined at the position the composition began.
type CompositionOverlay struct {
	Line, Col int
	X, Y      float64
	Text      string
}

// Renderer composes the visible range of a buffer plus cache into the
// materialized frame the host paints: gutter, cursor, selection, and IME
// overlay. Grounded on backend/window.go's role as the thing that owns
// rendering-adjacent bookkeeping for a view, generalized to the
// cache/visible-range model described below.
type Renderer struct {
	fallback *highlight.Highlighter
}

// NewRenderer returns a Renderer using h as the synchronous best-effort
// fallback tokenizer for lines missing from the cache. h is the same
// restartable-per-line highlighter the async worker uses; calling it
// synchronously for an uncached line is cheap because it has no
// cross-line state to reconstruct.
func NewRenderer(h *highlight.Highlighter) *Renderer {
	return &Renderer{fallback: h}
}

// RenderLines materializes every line in visible, preferring cached
// tokens and falling back to a synchronous tokenize otherwise.
func (r *Renderer) RenderLines(buf *buffer.Buffer, visible coretext.LineRange, language string) []RenderedLine {
	var out []RenderedLine
	for line := visible.Start; line < visible.End; line++ {
		text, err := buf.LineText(line)
		if err != nil {
			continue
		}
		if tokens, ok := buf.Cache().Get(line); ok {
			out = append(out, RenderedLine{LineNumber: line, Text: text, Tokens: tokens, FromCache: true})
			continue
		}
		tokens := r.fallback.Tokenize(language, text)
		out = append(out, RenderedLine{LineNumber: line, Text: text, Tokens: tokens, FromCache: false})
	}
	return out
}

// Cursor returns the pixel position of the cursor given the line's text
// and the buffer's metrics.
func (r *Renderer) Cursor(m Metrics, lineText string, cursor buffer.Cursor) CursorRect {
	return CursorRect{
		X: m.XFromCol(stripTrailingNewline(lineText), cursor.Col),
		Y: float64(cursor.Line) * m.LineHeight,
	}
}

// SelectionRects produces one rectangle per line the selection touches,
// reading each touched line from buf on demand so the renderer need not
// materialize the whole buffer.
func (r *Renderer) SelectionRects(buf *buffer.Buffer, m Metrics, sel coretext.Region) []SelectionRect {
	if sel.Empty() {
		return nil
	}
	startLine, startCol := buf.RowCol(sel.Begin())
	endLine, endCol := buf.RowCol(sel.End())

	var rects []SelectionRect
	for line := startLine; line <= endLine; line++ {
		text, err := buf.LineText(line)
		if err != nil {
			continue
		}
		clean := stripTrailingNewline(text)
		colStart := 0
		colEnd := len([]rune(clean))
		if line == startLine {
			colStart = startCol
		}
		if line == endLine {
			colEnd = endCol
		}
		rects = append(rects, SelectionRect{
			Line:   line,
			XStart: m.XFromCol(clean, colStart),
			XEnd:   m.XFromCol(clean, colEnd),
		})
	}
	return rects
}

// CompositionPreview returns the IME overlay for an active composition,
// or ok=false when the pipeline isn't composing.
func (r *Renderer) CompositionPreview(p *InputPipeline, m Metrics, lineText string) (CompositionOverlay, bool) {
	if p.State() != Composing {
		return CompositionOverlay{}, false
	}
	pos := p.CompositionStartPos()
	return CompositionOverlay{
		Line: pos.Line,
		Col:  pos.Col,
		X:    m.XFromCol(stripTrailingNewline(lineText), pos.Col),
		Y:    float64(pos.Line) * m.LineHeight,
		Text: p.CompositionPreview(),
	}, true
}
