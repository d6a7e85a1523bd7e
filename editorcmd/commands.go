package editorcmd

import (
	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/tabset"
)

func cursorAt(buf *buffer.Buffer, point int) buffer.Cursor {
	line, col := buf.RowCol(point)
	return buffer.Cursor{Line: line, Col: col}
}

// selectionOrLine returns the text a Copy/Cut should act on: the current
// selection if non-empty, or the whole line the cursor sits on (including
// its trailing newline, if any) when nothing is selected — matching
// copycutpaste_test.go's empty-region-copies-the-line behavior.
func selectionOrLine(tab *tabset.Tab) (start, end int, text string) {
	sel := tab.Selection
	if !sel.Empty() {
		start, end = sel.Begin(), sel.End()
		text, _ = tab.Buffer.Slice(start, end)
		return start, end, text
	}
	lineIdx := tab.Cursor().Line
	lineText, err := tab.Buffer.LineText(lineIdx)
	if err != nil {
		return 0, 0, ""
	}
	start = tab.Buffer.LineToChar(lineIdx)
	return start, start + len([]rune(lineText)), lineText
}

// Copy copies the current selection (or current line, if nothing is
// selected) to the clipboard without modifying the buffer.
func Copy(tab *tabset.Tab, cb Clipboard) error {
	_, _, text := selectionOrLine(tab)
	return cb.Write(text)
}

// Cut copies the current selection (or current line) to the clipboard
// and removes it from the buffer, collapsing the cursor to the removal
// point.
func Cut(tab *tabset.Tab, cb Clipboard) error {
	start, end, text := selectionOrLine(tab)
	if err := cb.Write(text); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	before := cursorAt(tab.Buffer, start)
	tab.Buffer.Remove(start, end, before, before)
	tab.Pipeline.SetCursor(before)
	tab.Selection = tab.Selection.Clamp(tab.Buffer.LenChars())
	return nil
}

// Paste reads the clipboard and inserts it at the cursor, replacing the
// current selection if one exists.
func Paste(tab *tabset.Tab, cb Clipboard) error {
	text, err := cb.Read()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	point := tab.Cursor()
	insertAt := tab.Buffer.TextPoint(point.Line, point.Col)
	if sel := tab.Selection; !sel.Empty() {
		insertAt = sel.Begin()
		before := cursorAt(tab.Buffer, sel.Begin())
		tab.Buffer.Remove(sel.Begin(), sel.End(), before, before)
	}

	before := cursorAt(tab.Buffer, insertAt)
	after := cursorAt(tab.Buffer, insertAt+len([]rune(text)))
	tab.Buffer.Insert(insertAt, text, before, after)
	tab.Pipeline.SetCursor(after)
	tab.Selection = tab.Selection.Clamp(tab.Buffer.LenChars())
	return nil
}

// Undo reverts the most recent edit on tab, moving its cursor to the
// restored position.
func Undo(tab *tabset.Tab) bool {
	return tab.Pipeline.Undo()
}

// Redo reapplies the most recently undone edit on tab.
func Redo(tab *tabset.Tab) bool {
	return tab.Pipeline.Redo()
}
