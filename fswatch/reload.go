package fswatch

import (
	"os"
	"sync/atomic"

	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/corelog"
)

// TabReloader watches a single file path and reloads buf from disk on
// external changes, the way view.go's FileChanged does. Call
// BeginSave/EndSave around the editor's own write to path so the write
// doesn't trigger a spurious self-reload.
type TabReloader struct {
	watcher *Watcher
	path    string
	buf     *buffer.Buffer
	saving  int32
}

// WatchTab starts reloading buf whenever path changes on disk, through w.
func WatchTab(w *Watcher, path string, buf *buffer.Buffer) *TabReloader {
	r := &TabReloader{watcher: w, path: path, buf: buf}
	w.Watch(path, r.onChange)
	return r
}

// BeginSave marks the start of an editor-initiated write to the watched
// path, so the resulting change event reloads nothing.
func (r *TabReloader) BeginSave() {
	atomic.StoreInt32(&r.saving, 1)
}

// EndSave clears the self-write guard BeginSave set.
func (r *TabReloader) EndSave() {
	atomic.StoreInt32(&r.saving, 0)
}

// Stop stops watching the path.
func (r *TabReloader) Stop() {
	r.watcher.UnWatch(r.path)
}

func (r *TabReloader) onChange() {
	if atomic.LoadInt32(&r.saving) != 0 {
		return
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		corelog.Error("fswatch: could not reload %s: %v", r.path, err)
		return
	}
	r.buf.ReloadFromText(string(data))
}
