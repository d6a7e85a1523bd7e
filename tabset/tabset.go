// Package tabset implements EditorTab and TabSet: an ordered collection
// of open files, each binding one TextBuffer to its own scroll state,
// cursor, and selection. Grounded on backend/window.go's Window, which
// plays the identical multiplexing role: a mutex-guarded slice of views
// plus an active pointer.
package tabset

import (
	"sync"

	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/viewport"
)

// Tab owns one TextBuffer, a VirtualScroll, a cursor via its
// InputPipeline, and an optional selection. Created on file open or
// new-untitled; destroyed on close (any unsaved buffer state is
// discarded; persistence is out of scope here.
type Tab struct {
	Title     string
	FilePath  string
	Buffer    *buffer.Buffer
	Scroll    *viewport.VirtualScroll
	Pipeline  *viewport.InputPipeline
	Selection coretext.Region
}

// newUntitledTab returns a fresh empty tab, the kind TabSet creates when
// the last tab closes or NewTab is called without a file.
func newUntitledTab(title string, viewportHeight, lineHeight float64, overscan int) *Tab {
	buf := buffer.New()
	return &Tab{
		Title:    title,
		Buffer:   buf,
		Scroll:   viewport.NewVirtualScroll(viewportHeight, lineHeight, overscan, buf.LenLines()),
		Pipeline: viewport.NewInputPipeline(buf),
	}
}

// Cursor returns the tab's current cursor position.
func (t *Tab) Cursor() buffer.Cursor {
	return t.Pipeline.Cursor()
}

// TabSet multiplexes open tabs: an ordered sequence plus an active index.
// Invariant: activeIndex < len(tabs) whenever len(tabs) > 0; closing the
// last tab creates a fresh untitled one so the invariant never needs a
// "no tabs open" exception (mirrors Window.NewFile's role as the thing
// that guarantees a View always exists to be active).
type TabSet struct {
	mu             sync.Mutex
	tabs           []*Tab
	activeIndex    int
	viewportHeight float64
	lineHeight     float64
	overscan       int
	untitledSeq    int
}

// New returns a TabSet with a single fresh untitled tab active, using the
// given viewport metrics for every tab it creates.
func New(viewportHeight, lineHeight float64, overscan int) *TabSet {
	ts := &TabSet{viewportHeight: viewportHeight, lineHeight: lineHeight, overscan: overscan}
	ts.appendUntitled()
	return ts
}

func (ts *TabSet) appendUntitled() *Tab {
	ts.untitledSeq++
	tab := newUntitledTab(untitledTitle(ts.untitledSeq), ts.viewportHeight, ts.lineHeight, ts.overscan)
	ts.tabs = append(ts.tabs, tab)
	ts.activeIndex = len(ts.tabs) - 1
	return tab
}

func untitledTitle(seq int) string {
	if seq <= 1 {
		return "untitled"
	}
	return "untitled-" + itoa(seq)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// NewTab opens a new untitled tab and makes it active.
func (ts *TabSet) NewTab() *Tab {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.appendUntitled()
}

// OpenBuffer adds a tab wrapping an already-loaded buffer (the caller is
// responsible for reading the file; TabSet only wires it into a Tab).
func (ts *TabSet) OpenBuffer(title, filePath string, buf *buffer.Buffer) *Tab {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	tab := &Tab{
		Title:    title,
		FilePath: filePath,
		Buffer:   buf,
		Scroll:   viewport.NewVirtualScroll(ts.viewportHeight, ts.lineHeight, ts.overscan, buf.LenLines()),
		Pipeline: viewport.NewInputPipeline(buf),
	}
	ts.tabs = append(ts.tabs, tab)
	ts.activeIndex = len(ts.tabs) - 1
	return tab
}

// Tabs returns a snapshot of the current tab order.
func (ts *TabSet) Tabs() []*Tab {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]*Tab, len(ts.tabs))
	copy(out, ts.tabs)
	return out
}

// Active returns the currently active tab, or nil if there are none (can
// only happen transiently, since closing the last tab always creates a
// fresh one).
func (ts *TabSet) Active() *Tab {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.activeIndex < 0 || ts.activeIndex >= len(ts.tabs) {
		return nil
	}
	return ts.tabs[ts.activeIndex]
}

// ActiveIndex returns the index of the active tab.
func (ts *TabSet) ActiveIndex() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.activeIndex
}

// SetActive switches the active tab, preserving each tab's own cursor and
// scroll state (nothing to do here beyond the index: both live on the Tab
// itself and are untouched by switching).
func (ts *TabSet) SetActive(index int) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if index < 0 || index >= len(ts.tabs) {
		return false
	}
	ts.activeIndex = index
	return true
}

// Close removes the tab at index, discarding its buffer state. If this
// was the last tab, a fresh untitled tab is created so the active_index <
// len invariant never breaks.
func (ts *TabSet) Close(index int) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if index < 0 || index >= len(ts.tabs) {
		return false
	}
	ts.tabs = append(ts.tabs[:index], ts.tabs[index+1:]...)
	if len(ts.tabs) == 0 {
		ts.appendUntitled()
		return true
	}
	switch {
	case ts.activeIndex > index:
		ts.activeIndex--
	case ts.activeIndex == index:
		if ts.activeIndex >= len(ts.tabs) {
			ts.activeIndex = len(ts.tabs) - 1
		}
	}
	return true
}

// Len returns the number of open tabs.
func (ts *TabSet) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.tabs)
}
