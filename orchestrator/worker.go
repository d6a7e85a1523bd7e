// Package orchestrator wires a Buffer's edits through to rendered
// highlight tokens: InputPipeline mutates the Buffer, which invalidates
// its own HighlightCache and notifies Worker via AddObserver; Worker
// enqueues the affected lines onto a HighlightJobQueue and tokenizes them
// a batch at a time, writing results back into the cache only if they are
// still current. Grounded on view.go's parsethread/reparse/flush: a
// per-view background pipeline gated by a change-count check before a
// parse result is committed, adapted here from "one syntax parse of the
// whole buffer, per view goroutine" to "per-line job queue, drained
// cooperatively in batches by whatever scheduler is driving the UI task".
package orchestrator

import (
	"time"

	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
	"github.com/zylacode/editorcore/highlight"
)

// DefaultInitialBatchDelay is how long Worker waits after the first edit
// in an otherwise-idle buffer before draining any jobs, so a burst of
// keystrokes coalesces into one batch instead of re-tokenizing after every
// character.
const DefaultInitialBatchDelay = 100 * time.Millisecond

// DefaultBatchSize is how many lines DrainBatch tokenizes per call,
// keeping each call short enough not to block the UI task it cooperates
// with.
const DefaultBatchSize = 16

// Worker drives the async highlight pipeline for one Buffer.
type Worker struct {
	buf         *buffer.Buffer
	queue       *highlight.JobQueue
	highlighter *highlight.Highlighter
	language    string

	batchSize    int
	initialDelay time.Duration
	firstPending time.Time
	hasPending   bool
}

// NewWorker returns a Worker that tokenizes buf's lines as language,
// registering itself as a change observer on buf.
func NewWorker(buf *buffer.Buffer, highlighter *highlight.Highlighter, language string) *Worker {
	w := &Worker{
		buf:          buf,
		queue:        highlight.NewJobQueue(highlight.DefaultMaxQueueSize),
		highlighter:  highlighter,
		language:     language,
		batchSize:    DefaultBatchSize,
		initialDelay: DefaultInitialBatchDelay,
	}
	buf.AddObserver(w.onChange)
	return w
}

// SetLanguage changes the language jobs are tokenized as and clears
// anything already queued under the old language (a stale-language token
// stream is worse than a brief gap, since every cached line would need
// relabeling anyway).
func (w *Worker) SetLanguage(language string) {
	w.language = language
	w.queue.Clear()
	w.buf.Cache().InvalidateRange(coretext.LineRange{Start: 0, End: w.buf.LenLines()})
	w.hasPending = false
}

func (w *Worker) onChange(affected coretext.LineRange) {
	jobs := make([]highlight.Job, 0, affected.End-affected.Start)
	version := w.buf.Version()
	for line := affected.Start; line < affected.End; line++ {
		text, err := w.buf.LineText(line)
		if err != nil {
			continue
		}
		jobs = append(jobs, highlight.Job{LineIdx: line, Text: text, Version: version})
	}
	if len(jobs) == 0 {
		return
	}
	if !w.hasPending {
		w.firstPending = time.Now()
		w.hasPending = true
	}
	w.queue.EnqueueBatch(jobs)
}

// Ready reports whether enough time has passed since the first pending
// edit for DrainBatch to start working through the queue.
func (w *Worker) Ready() bool {
	if !w.hasPending {
		return false
	}
	return time.Since(w.firstPending) >= w.initialDelay
}

// Pending returns the number of lines currently queued for tokenization.
func (w *Worker) Pending() int {
	return w.queue.Len()
}

// DrainBatch tokenizes up to the worker's batch size of pending lines and
// writes each result into the buffer's HighlightCache, discarding any
// whose job version has been superseded by a newer edit to the same line.
// It does nothing before Ready() returns true. Returns the number of
// lines processed (not necessarily written, if stale).
func (w *Worker) DrainBatch() int {
	if !w.Ready() {
		return 0
	}
	batch := w.queue.DequeueBatch(w.batchSize)
	for _, job := range batch {
		tokens := w.highlighter.Tokenize(w.language, job.Text)
		w.buf.Cache().Put(job.LineIdx, tokens, job.Version, w.buf.Version())
	}
	if w.queue.Len() == 0 {
		w.hasPending = false
	}
	return len(batch)
}
