// Package buffer implements TextBuffer: a Rope plus a
// per-line HighlightCache plus a bounded UndoHistory, all owned by one
// Buffer and versioned so async consumers (the highlight worker) can
// detect staleness. Ported in spirit from backend/buffer.go's
// Insert/Erase/notify shape, generalized from a byte-offset string buffer
// to the rune-indexed Rope this spec requires.
package buffer

import (
	"strings"

	"github.com/zylacode/editorcore/coreerr"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/rope"
)

// ChangeCallback is notified after every mutation with the affected line
// range, mirroring backend/buffer.go's BufferChangedCallback.
type ChangeCallback func(affected coretext.LineRange)

// Buffer owns one Rope, one HighlightCache, and one UndoHistory.
type Buffer struct {
	rope     *rope.Rope
	cache    *HighlightCache
	undo     *UndoHistory
	version  uint64
	modified bool
	language string
	filePath string

	callbacks []ChangeCallback
}

// New returns an empty Buffer with a default-bounded undo history.
func New() *Buffer {
	return &Buffer{
		rope:  rope.New(),
		cache: newHighlightCache(),
		undo:  NewUndoHistory(DefaultMaxHistory),
	}
}

// NewWithText returns a Buffer pre-populated with text, unmodified
// (as if just loaded from disk).
func NewWithText(text string) *Buffer {
	b := New()
	b.rope = rope.FromString(text)
	return b
}

// AddObserver registers a callback invoked after every mutation.
func (b *Buffer) AddObserver(cb ChangeCallback) {
	b.callbacks = append(b.callbacks, cb)
}

func (b *Buffer) notify(affected coretext.LineRange) {
	for _, cb := range b.callbacks {
		cb(affected)
	}
}

// Version returns the monotonically increasing mutation counter.
func (b *Buffer) Version() uint64 { return b.version }

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.modified }

// Language returns the buffer's configured language id (for highlighting
// and LSP routing).
func (b *Buffer) Language() string { return b.language }

// SetLanguage sets the buffer's language id.
func (b *Buffer) SetLanguage(lang string) { b.language = lang }

// FilePath returns the buffer's associated file path, or "" if untitled.
func (b *Buffer) FilePath() string { return b.filePath }

// SetFilePath sets the buffer's associated file path.
func (b *Buffer) SetFilePath(p string) { b.filePath = p }

// LenChars returns the number of characters in the buffer.
func (b *Buffer) LenChars() int { return b.rope.LenChars() }

// LenLines returns the number of lines in the buffer; always >= 1.
func (b *Buffer) LenLines() int { return b.rope.LenLines() }

// Cache returns the buffer's HighlightCache.
func (b *Buffer) Cache() *HighlightCache { return b.cache }

// UndoHistory returns the buffer's UndoHistory.
func (b *Buffer) UndoHistory() *UndoHistory { return b.undo }

// Slice returns the text in [start, end), failing OutOfRange if
// start > end or end > LenChars.
func (b *Buffer) Slice(start, end int) (string, error) {
	s, err := b.rope.Slice(start, end)
	if err != nil {
		return "", coreerr.Wrap(coreerr.OutOfRange, "buffer.Slice", err)
	}
	return s, nil
}

// LineSegment returns the character window [startCol, endCol) of line,
// clamped to the line's length; empty if startCol >= len. Fails
// NoSuchLine (OutOfRange) for a missing line.
func (b *Buffer) LineSegment(line, startCol, endCol int) (string, error) {
	text, err := b.rope.Line(line)
	if err != nil {
		return "", coreerr.Wrap(coreerr.OutOfRange, "buffer.LineSegment: no such line", err)
	}
	runes := []rune(text)
	if startCol >= len(runes) {
		return "", nil
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > len(runes) {
		endCol = len(runes)
	}
	if endCol < startCol {
		endCol = startCol
	}
	return string(runes[startCol:endCol]), nil
}

// Insert inserts text at charIdx (clamped to [0, LenChars]), bumps
// version, invalidates the affected cache range, and records an undo
// entry using the cursor positions the caller supplies.
func (b *Buffer) Insert(charIdx int, text string, cursorBefore, cursorAfter Cursor) {
	n, start, end := b.rope.Insert(charIdx, text)
	if n == 0 {
		return
	}
	b.bumpVersion()
	b.modified = true
	affected := coretext.LineRange{Start: start, End: end}.Clamp(b.rope.LenLines())
	b.cache.InvalidateRange(affected)
	b.undo.Push(EditOperation{
		Kind:         OpInsert,
		Position:     clampToLen(charIdx, b.rope.LenChars()-n),
		Text:         text,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
	})
	b.notify(affected)
}

// Remove deletes [start, end) (clamped, no-op if empty), bumps version,
// invalidates the affected cache range, and records an undo entry.
func (b *Buffer) Remove(start, end int, cursorBefore, cursorAfter Cursor) {
	removed, err := b.rope.Slice(clampToLen(start, b.rope.LenChars()), clampToLen(end, b.rope.LenChars()))
	if err != nil || removed == "" {
		return
	}
	affStart, affEnd := b.rope.Remove(start, end)
	b.bumpVersion()
	b.modified = true
	affected := coretext.LineRange{Start: affStart, End: affEnd}.Clamp(b.rope.LenLines())
	b.cache.InvalidateRange(affected)
	b.undo.Push(EditOperation{
		Kind:         OpDelete,
		Position:     clampToLen(start, b.rope.LenChars()),
		Text:         removed,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
	})
	b.notify(affected)
}

// Undo pops and replays the most recent edit's inverse, returning the
// cursor it should be restored to, and whether there was anything to undo.
func (b *Buffer) Undo() (Cursor, bool) {
	op, ok := b.undo.Undo()
	if !ok {
		return Cursor{}, false
	}
	b.applyInverse(op)
	return op.CursorBefore, true
}

// Redo pops and replays the most recently undone edit, returning the
// cursor it should be restored to.
func (b *Buffer) Redo() (Cursor, bool) {
	op, ok := b.undo.Redo()
	if !ok {
		return Cursor{}, false
	}
	b.applyForward(op)
	return op.CursorAfter, true
}

func (b *Buffer) applyInverse(op EditOperation) {
	switch op.Kind {
	case OpInsert:
		b.rawRemove(op.Position, op.Position+len([]rune(op.Text)))
	case OpDelete:
		b.rawInsert(op.Position, op.Text)
	}
}

func (b *Buffer) applyForward(op EditOperation) {
	switch op.Kind {
	case OpInsert:
		b.rawInsert(op.Position, op.Text)
	case OpDelete:
		b.rawRemove(op.Position, op.Position+len([]rune(op.Text)))
	}
}

// rawInsert/rawRemove mutate the rope and cache without touching the undo
// stack, used when replaying undo/redo (the history entry already exists).
func (b *Buffer) rawInsert(charIdx int, text string) {
	_, start, end := b.rope.Insert(charIdx, text)
	b.bumpVersion()
	b.modified = true
	affected := coretext.LineRange{Start: start, End: end}.Clamp(b.rope.LenLines())
	b.cache.InvalidateRange(affected)
	b.notify(affected)
}

func (b *Buffer) rawRemove(start, end int) {
	affStart, affEnd := b.rope.Remove(start, end)
	b.bumpVersion()
	b.modified = true
	affected := coretext.LineRange{Start: affStart, End: affEnd}.Clamp(b.rope.LenLines())
	b.cache.InvalidateRange(affected)
	b.notify(affected)
}

func (b *Buffer) bumpVersion() {
	b.version++
}

// ClearModified clears the modified flag without bumping version, used by
// the input pipeline's save pass-through on a successful write.
func (b *Buffer) ClearModified() {
	b.modified = false
}

// ReloadFromText replaces the entire buffer contents with text, the way
// view.go's FileChanged does when an externally modified file is re-read
// from disk: the old undo history no longer applies to anything on
// screen, so it is discarded rather than recording the replacement as one
// more undoable edit, and the buffer comes back out unmodified (as if
// freshly opened).
func (b *Buffer) ReloadFromText(text string) {
	b.rope = rope.FromString(text)
	b.cache.InvalidateRange(coretext.LineRange{Start: 0, End: b.rope.LenLines()})
	b.undo = NewUndoHistory(DefaultMaxHistory)
	b.modified = false
	b.bumpVersion()
	b.notify(coretext.LineRange{Start: 0, End: b.rope.LenLines()})
}

// TrimCache retains only cache entries within
// [visibleStart-margin, visibleEnd+margin].
func (b *Buffer) TrimCache(visibleStart, visibleEnd, margin int) {
	b.cache.Trim(visibleStart, visibleEnd, margin)
}

// String returns the full buffer contents.
func (b *Buffer) String() string {
	return b.rope.String()
}

// LineText returns the text of line idx, trailing newline included if
// present.
func (b *Buffer) LineText(idx int) (string, error) {
	return b.rope.Line(idx)
}

// LineToChar returns the character index where line idx begins.
func (b *Buffer) LineToChar(idx int) int { return b.rope.LineToChar(idx) }

// CharToLine returns the line index containing character idx.
func (b *Buffer) CharToLine(idx int) int { return b.rope.CharToLine(idx) }

// Snapshot returns an O(1)-shared immutable view of the rope.
func (b *Buffer) Snapshot() *rope.Rope { return b.rope.Snapshot() }

// RowCol converts a character offset to a (row, col) pair, clamped like
// backend/primitives.Buffer.RowCol.
func (b *Buffer) RowCol(point int) (int, int) {
	if point < 0 {
		return 0, 0
	}
	line := b.rope.CharToLine(point)
	col := point - b.rope.LineToChar(line)
	return line, col
}

// TextPoint is the inverse of RowCol.
func (b *Buffer) TextPoint(row, col int) int {
	return b.rope.LineToChar(row) + col
}

func clampToLen(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// newlineCount returns the number of '\n' characters in s.
func newlineCount(s string) int {
	return strings.Count(s, "\n")
}
