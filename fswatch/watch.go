// Package fswatch notifies interested tabs when a file they have open is
// modified outside the editor, the way view.go's FileChanged callback is
// driven by backend/watch/watch.go's Watcher.
package fswatch

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rjeczalik/notify"

	"github.com/zylacode/editorcore/corelog"
)

// watchEntry is one watched filesystem path: its own notify channel (so
// it can be unwatched independently of every other watched path) plus the
// actions to run when it fires. pending holds actions for a path that
// doesn't exist yet; those fire once the path appears under a watched
// directory, instead of being registered with notify directly.
type watchEntry struct {
	ch      chan notify.EventInfo
	actions []func()
	pending map[string][]func()
}

// Watcher multiplexes filesystem change notifications across every
// currently open file, mirroring backend/watch/watch.go's Watcher: paths
// that don't exist yet are watched at their parent directory instead, and
// a deleted file falls back to watching its parent for re-creation (the
// common shape of an editor or external tool doing an atomic save).
type Watcher struct {
	mu      sync.Mutex
	entries map[string]*watchEntry
}

// New returns an empty Watcher.
func New() *Watcher {
	return &Watcher{entries: make(map[string]*watchEntry)}
}

// Watch registers action to run whenever path changes. Calling Watch
// again for the same path appends another action rather than replacing
// the watch.
func (w *Watcher) Watch(path string, action func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watchLocked(path, action)
}

func (w *Watcher) watchLocked(path string, action func()) {
	if e, ok := w.entries[path]; ok {
		if action != nil {
			e.actions = append(e.actions, action)
		}
		return
	}

	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		// The file doesn't exist yet: watch its parent directory and fire
		// action (plus establish a real watch on path) once it appears.
		dir := filepath.Dir(path)
		w.watchLocked(dir, nil)
		de := w.entries[dir]
		if de == nil {
			corelog.Warn("fswatch: could not watch parent of %s", path)
			return
		}
		if de.pending == nil {
			de.pending = make(map[string][]func())
		}
		if action != nil {
			de.pending[path] = append(de.pending[path], action)
		}
		return
	}
	if err != nil {
		corelog.Error("fswatch: could not stat %s: %v", path, err)
		return
	}
	if !fi.IsDir() && action == nil {
		corelog.Warn("fswatch: no action given for watching %s", path)
		return
	}

	ch := make(chan notify.EventInfo, 16)
	if err := notify.Watch(path, ch, notify.All); err != nil {
		corelog.Error("fswatch: could not watch %s: %v", path, err)
		return
	}

	e := &watchEntry{ch: ch}
	if action != nil {
		e.actions = append(e.actions, action)
	}
	w.entries[path] = e
	go w.dispatch(path, e)
}

// UnWatch stops watching path entirely, discarding every action
// registered for it.
func (w *Watcher) UnWatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unwatchLocked(path)
}

func (w *Watcher) unwatchLocked(path string) {
	e, ok := w.entries[path]
	if !ok {
		return
	}
	delete(w.entries, path)
	notify.Stop(e.ch)
	close(e.ch)
}

// dispatch runs e's actions for every event on path, until the entry's
// channel is closed by UnWatch. A remove/rename event drops the watch on
// path and falls back to watching its parent directory, so a later
// atomic-save recreation of the same path is still picked up. A create
// event under a directory entry promotes any pending path waiting on it
// to a real watch and fires its action once.
func (w *Watcher) dispatch(path string, e *watchEntry) {
	for info := range e.ch {
		switch info.Event() {
		case notify.Remove, notify.Rename:
			w.mu.Lock()
			if w.entries[path] == e {
				delete(w.entries, path)
				notify.Stop(e.ch)
			}
			// path no longer exists, so each action is re-registered as
			// pending on the parent directory's watch.
			w.watchLocked(filepath.Dir(path), nil)
			for _, action := range e.actions {
				w.watchLocked(path, action)
			}
			w.mu.Unlock()
			return
		case notify.Create:
			w.mu.Lock()
			pending := e.pending[info.Path()]
			delete(e.pending, info.Path())
			childPath := info.Path()
			w.mu.Unlock()
			if pending != nil {
				w.mu.Lock()
				for _, action := range pending {
					w.watchLocked(childPath, action)
				}
				w.mu.Unlock()
				for _, action := range pending {
					action()
				}
			}
		}

		w.mu.Lock()
		actions := append([]func(){}, e.actions...)
		w.mu.Unlock()
		for _, action := range actions {
			action()
		}
	}
}

// Close unwatches every path the Watcher currently tracks.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path := range w.entries {
		w.unwatchLocked(path)
	}
}
