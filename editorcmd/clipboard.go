// Package editorcmd implements the small set of tab-level commands that
// sit above InputPipeline: clipboard Cut/Copy/Paste and thin Undo/Redo
// wrappers, the way backend/commands binds individual commands onto
// View/UndoStack operations.
package editorcmd

import "github.com/atotto/clipboard"

// Clipboard abstracts the host clipboard so commands are testable without
// touching the real one, mirroring the editor's SetClipboardFuncs hook in
// backend/commands/copycutpaste_test.go.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// SystemClipboard is the default Clipboard, backed by the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Read() (string, error)   { return clipboard.ReadAll() }
func (SystemClipboard) Write(text string) error { return clipboard.WriteAll(text) }

// memClipboard is an in-process Clipboard used by tests, the same role
// copycutpaste_test.go's dummyClipboard plays there.
type memClipboard struct {
	text string
}

func (m *memClipboard) Read() (string, error) { return m.text, nil }
func (m *memClipboard) Write(text string) error {
	m.text = text
	return nil
}
