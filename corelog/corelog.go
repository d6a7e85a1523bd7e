// Package corelog is the editor core's leveled logging wrapper, mirroring
// the shape of backend/log: thin Printf-style
// functions over github.com/limetext/log4go so call sites (currently the
// fswatch package) log the same way view.go, backend/window.go and
// backend/watch/watch.go do.
package corelog

import "github.com/limetext/log4go"

// Finest logs at the most verbose level; used for per-keystroke and
// per-frame tracing that should normally be compiled out in production
// builds.
func Finest(format string, args ...interface{}) {
	log4go.Finest(format, args...)
}

// Fine logs lifecycle detail below Debug: cache hits/misses, job queue
// churn, settings resolution.
func Fine(format string, args ...interface{}) {
	log4go.Fine(format, args...)
}

// Debug logs one-off diagnostic detail.
func Debug(format string, args ...interface{}) {
	log4go.Debug(format, args...)
}

// Warn logs a recoverable problem: a dead LSP server about to be
// restarted, a dropped highlight job, a best-effort shutdown failing.
func Warn(format string, args ...interface{}) {
	log4go.Warn(format, args...)
}

// Error logs a problem the caller could not itself recover from, but that
// must not crash the process (a recovered panic, an I/O failure).
func Error(format string, args ...interface{}) {
	log4go.Error(format, args...)
}
