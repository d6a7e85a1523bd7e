// Package highlight implements SyntaxHighlighter and HighlightJobQueue from
// a dedup-by-line bounded FIFO of pending lines, and a
// restartable-per-line regex tokenizer keyed by language id. Grounded on
// backend/textmate/language.go's use of github.com/limetext/rubex for
// pattern matching and view.go's Classify for word/punctuation boundaries.
package highlight

// Job is one pending highlight request: a line awaiting tokenization,
// carrying the buffer version it was enqueued against so a stale result
// can be discarded by the cache's version check.
type Job struct {
	LineIdx int
	Text    string
	Version uint64
}

// DefaultMaxQueueSize bounds JobQueue.
const DefaultMaxQueueSize = 100

// JobQueue is an ordered, dedup-by-line FIFO of pending Jobs: at most one
// job per LineIdx, and length never exceeds maxQueueSize (oldest dropped
// first when it would).
type JobQueue struct {
	jobs         []Job
	maxQueueSize int
}

// NewJobQueue returns a JobQueue bounded to maxQueueSize entries. A
// maxQueueSize of 0 uses DefaultMaxQueueSize.
func NewJobQueue(maxQueueSize int) *JobQueue {
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}
	return &JobQueue{maxQueueSize: maxQueueSize}
}

// Enqueue removes any existing job for job.LineIdx, appends job at the
// tail, then drops from the front until the bound is satisfied.
func (q *JobQueue) Enqueue(job Job) {
	for i, existing := range q.jobs {
		if existing.LineIdx == job.LineIdx {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			break
		}
	}
	q.jobs = append(q.jobs, job)
	for len(q.jobs) > q.maxQueueSize {
		q.jobs = q.jobs[1:]
	}
}

// EnqueueBatch enqueues each job in order.
func (q *JobQueue) EnqueueBatch(jobs []Job) {
	for _, j := range jobs {
		q.Enqueue(j)
	}
}

// Dequeue pops the head job, if any.
func (q *JobQueue) Dequeue() (Job, bool) {
	if len(q.jobs) == 0 {
		return Job{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// DequeueBatch pops up to n jobs from the head, for the cooperative
// worker's batch-drain.
func (q *JobQueue) DequeueBatch(n int) []Job {
	if n > len(q.jobs) {
		n = len(q.jobs)
	}
	batch := append([]Job(nil), q.jobs[:n]...)
	q.jobs = q.jobs[n:]
	return batch
}

// Clear empties the queue, used on large edits or language changes.
func (q *JobQueue) Clear() {
	q.jobs = q.jobs[:0]
}

// Len returns the number of pending jobs.
func (q *JobQueue) Len() int {
	return len(q.jobs)
}
