package viewport

import (
	"strings"

	"github.com/zylacode/editorcore/buffer"
)

// State is the InputPipeline's IME state.
type State int

const (
	Idle State = iota
	Composing
)

// ImeConfirmationKeyCode is the legacy key code browsers fire for the
// Enter that confirms an IME composition, which must not also insert a
// newline.
const ImeConfirmationKeyCode = 229

// InputPipeline is the single IME-safe input authority for one tab: it
// owns the cursor and turns keyboard, IME and mouse events into
// Buffer.Insert/Remove/Undo/Redo calls. The clipboard commands in
// editorcmd also edit the Buffer directly. Grounded on
// original_source/src/core/virtual_editor.rs's InputPipeline state
// machine, since the terminal-era backend this is adapted from has no
// IME concept.
type InputPipeline struct {
	buf    *buffer.Buffer
	cursor buffer.Cursor

	state               State
	compositionStartPos buffer.Cursor
	compositionPreview  string
}

// NewInputPipeline returns an Idle pipeline for buf, cursor at the origin.
func NewInputPipeline(buf *buffer.Buffer) *InputPipeline {
	return &InputPipeline{buf: buf}
}

// Cursor returns the current cursor position.
func (p *InputPipeline) Cursor() buffer.Cursor { return p.cursor }

// SetCursor repositions the cursor without mutating the buffer (used on
// tab switch/load).
func (p *InputPipeline) SetCursor(c buffer.Cursor) { p.cursor = c }

// State returns the pipeline's current IME state.
func (p *InputPipeline) State() State { return p.state }

// CompositionPreview returns the not-yet-committed composition text, for
// the renderer's overlay.
func (p *InputPipeline) CompositionPreview() string { return p.compositionPreview }

// CompositionStartPos returns where the active composition began.
func (p *InputPipeline) CompositionStartPos() buffer.Cursor { return p.compositionStartPos }

// CompositionStart enters Composing and records the start position. All
// raw input events are ignored for buffer mutation until CompositionEnd.
func (p *InputPipeline) CompositionStart() {
	p.state = Composing
	p.compositionStartPos = p.cursor
	p.compositionPreview = ""
}

// CompositionUpdate updates the preview overlay only; the buffer is never
// touched mid-composition.
func (p *InputPipeline) CompositionUpdate(text string) {
	if p.state != Composing {
		return
	}
	p.compositionPreview = text
}

// CompositionEnd exits Composing, inserts the committed text at the
// cursor, advances the cursor by its character count, records one Insert
// undo entry, and invalidates the affected cache line. It also clears the
// preview overlay so the renderer is the sole source of truth for what is
// displayed (the host's edit surface may have echoed the committed text
// itself; the pipeline's state says that echo should not be trusted).
func (p *InputPipeline) CompositionEnd(committed string) {
	p.state = Idle
	p.compositionPreview = ""
	if committed == "" {
		return
	}
	p.insertAtCursor(committed)
}

// HandleInput processes a raw (non-IME) input event. While Composing, it
// is ignored entirely.
func (p *InputPipeline) HandleInput(data string) {
	if p.state == Composing {
		return
	}
	if data == "" {
		return
	}
	p.insertAtCursor(data)
}

// HandleEnter processes an Enter keypress, refusing to insert a newline
// when any of the three IME-confirmation signals is set: the pipeline's
// own Composing flag, the host's composition flag, or the legacy 229 key
// code. Returns whether a newline was actually inserted.
func (p *InputPipeline) HandleEnter(hostComposing bool, keyCode int) bool {
	if p.state == Composing || hostComposing || keyCode == ImeConfirmationKeyCode {
		return false
	}
	p.insertAtCursor("\n")
	return true
}

func (p *InputPipeline) insertAtCursor(text string) {
	before := p.cursor
	charIdx := p.buf.TextPoint(before.Line, before.Col)
	after := buffer.Cursor{Line: before.Line, Col: before.Col + len([]rune(text))}
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		after = buffer.Cursor{Line: before.Line + strings.Count(text, "\n"), Col: len([]rune(text[i+1:]))}
	}
	p.buf.Insert(charIdx, text, before, after)
	p.cursor = after
}

// HandleBackspace deletes the character before the cursor, merging with
// the previous line if the cursor is at column 0.
func (p *InputPipeline) HandleBackspace() {
	charIdx := p.buf.TextPoint(p.cursor.Line, p.cursor.Col)
	if charIdx == 0 {
		return
	}
	before := p.cursor
	newLine, newCol := p.buf.RowCol(charIdx - 1)
	after := buffer.Cursor{Line: newLine, Col: newCol}
	p.buf.Remove(charIdx-1, charIdx, before, after)
	p.cursor = after
}

// MoveLeft moves the cursor one character left, wrapping to the end of
// the previous line at column 0.
func (p *InputPipeline) MoveLeft() {
	charIdx := p.buf.TextPoint(p.cursor.Line, p.cursor.Col)
	if charIdx == 0 {
		return
	}
	line, col := p.buf.RowCol(charIdx - 1)
	p.cursor = buffer.Cursor{Line: line, Col: col}
}

// MoveRight moves the cursor one character right, wrapping to the start
// of the next line past the end of the current one.
func (p *InputPipeline) MoveRight() {
	charIdx := p.buf.TextPoint(p.cursor.Line, p.cursor.Col)
	if charIdx >= p.buf.LenChars() {
		return
	}
	line, col := p.buf.RowCol(charIdx + 1)
	p.cursor = buffer.Cursor{Line: line, Col: col}
}

// MoveUp moves the cursor up one line, clamping the column to the target
// line's length.
func (p *InputPipeline) MoveUp() {
	if p.cursor.Line == 0 {
		return
	}
	p.cursor = p.clampedLineCol(p.cursor.Line-1, p.cursor.Col)
}

// MoveDown moves the cursor down one line, clamping the column to the
// target line's length.
func (p *InputPipeline) MoveDown() {
	if p.cursor.Line >= p.buf.LenLines()-1 {
		return
	}
	p.cursor = p.clampedLineCol(p.cursor.Line+1, p.cursor.Col)
}

func (p *InputPipeline) clampedLineCol(line, col int) buffer.Cursor {
	text, err := p.buf.LineText(line)
	if err != nil {
		return buffer.Cursor{Line: line, Col: 0}
	}
	runes := []rune(stripTrailingNewline(text))
	if col > len(runes) {
		col = len(runes)
	}
	return buffer.Cursor{Line: line, Col: col}
}

func stripTrailingNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

// Save is a pass-through to an external write operation; on success it
// clears the buffer's modified flag without bumping version.
func (p *InputPipeline) Save(write func() error) error {
	if err := write(); err != nil {
		return err
	}
	p.buf.ClearModified()
	return nil
}

// Undo pops and replays the most recent edit, moving the cursor to the
// restored position.
func (p *InputPipeline) Undo() bool {
	cur, ok := p.buf.Undo()
	if !ok {
		return false
	}
	p.cursor = cur
	return true
}

// Redo reapplies the most recently undone edit, moving the cursor to the
// restored position.
func (p *InputPipeline) Redo() bool {
	cur, ok := p.buf.Redo()
	if !ok {
		return false
	}
	p.cursor = cur
	return true
}

// MouseDown maps a pixel coordinate to a (line, col) position and moves
// the cursor there: line from the vertical offset and
// scroll_top, col from the half-advance-biased column lookup.
func (p *InputPipeline) MouseDown(x, y, scrollTop, textPadding float64, m Metrics) buffer.Cursor {
	line := 0
	if m.LineHeight > 0 {
		line = int((y + scrollTop) / m.LineHeight)
	}
	if max := p.buf.LenLines() - 1; line > max {
		line = max
	}
	if line < 0 {
		line = 0
	}
	text, err := p.buf.LineText(line)
	if err != nil {
		text = ""
	}
	col := m.ColFromX(stripTrailingNewline(text), x-textPadding)
	p.cursor = buffer.Cursor{Line: line, Col: col}
	return p.cursor
}
