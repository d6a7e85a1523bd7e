package editorcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/tabset"
	"github.com/zylacode/editorcore/viewport"
)

func newTestTab(text string) *tabset.Tab {
	buf := buffer.NewWithText(text)
	return &tabset.Tab{
		Buffer:   buf,
		Pipeline: viewport.NewInputPipeline(buf),
	}
}

func TestCopyWithSelectionLeavesBufferUnchanged(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 1, B: 3}
	cb := &memClipboard{}

	require.NoError(t, Copy(tab, cb))
	assert.Equal(t, "es", cb.text)
	assert.Equal(t, "test string", tab.Buffer.String(), "buffer mutated by Copy")
}

func TestCopyWithEmptySelectionCopiesWholeLine(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 3, B: 3}
	cb := &memClipboard{}

	require.NoError(t, Copy(tab, cb))
	assert.Equal(t, "test string", cb.text)
}

func TestCutRemovesSelectionAndCopiesIt(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 1, B: 3}
	cb := &memClipboard{}

	require.NoError(t, Cut(tab, cb))
	assert.Equal(t, "es", cb.text)
	assert.Equal(t, "tt string", tab.Buffer.String())
}

func TestCutWithEmptySelectionCutsWholeLine(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 3, B: 3}
	cb := &memClipboard{}

	require.NoError(t, Cut(tab, cb))
	assert.Equal(t, "test string", cb.text)
	assert.Empty(t, tab.Buffer.String(), "buffer after cutting whole line")
}

func TestPasteInsertsAtCursorWithNoSelection(t *testing.T) {
	tab := newTestTab("test string")
	tab.Pipeline.SetCursor(buffer.Cursor{Line: 0, Col: 1})
	cb := &memClipboard{text: "test"}

	require.NoError(t, Paste(tab, cb))
	assert.Equal(t, "ttestest string", tab.Buffer.String())
}

func TestPasteReplacesSelection(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 1, B: 3}
	cb := &memClipboard{text: "test"}

	require.NoError(t, Paste(tab, cb))
	assert.Equal(t, "ttestt string", tab.Buffer.String())
}

func TestPasteWithEmptyClipboardIsNoOp(t *testing.T) {
	tab := newTestTab("test string")
	cb := &memClipboard{text: ""}

	require.NoError(t, Paste(tab, cb))
	assert.Equal(t, "test string", tab.Buffer.String())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	tab := newTestTab("test string")
	tab.Selection = coretext.Region{A: 1, B: 3}
	cb := &memClipboard{}

	require.NoError(t, Cut(tab, cb))
	require.True(t, Undo(tab), "Undo() after a cut")
	assert.Equal(t, "test string", tab.Buffer.String())

	require.True(t, Redo(tab), "Redo() after an undo")
	assert.Equal(t, "tt string", tab.Buffer.String())
}
