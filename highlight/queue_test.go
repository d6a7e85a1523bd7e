package highlight

import "testing"

func TestEnqueueDedupsByLine(t *testing.T) {
	q := NewJobQueue(0)
	q.Enqueue(Job{LineIdx: 3, Text: "old", Version: 1})
	q.Enqueue(Job{LineIdx: 3, Text: "new", Version: 2})

	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	job, ok := q.Dequeue()
	if !ok || job.Text != "new" {
		t.Errorf("Dequeue() = %+v, ok=%v; want latest job for line 3", job, ok)
	}
}

func TestEnqueueDropsOldestWhenOverBound(t *testing.T) {
	q := NewJobQueue(2)
	q.Enqueue(Job{LineIdx: 1})
	q.Enqueue(Job{LineIdx: 2})
	q.Enqueue(Job{LineIdx: 3})

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	job, _ := q.Dequeue()
	if job.LineIdx != 2 {
		t.Errorf("oldest surviving job LineIdx = %d, want 2", job.LineIdx)
	}
}

func TestClearEmptiesQueue(t *testing.T) {
	q := NewJobQueue(0)
	q.Enqueue(Job{LineIdx: 1})
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", q.Len())
	}
}

func TestDequeueBatchCapsAtAvailable(t *testing.T) {
	q := NewJobQueue(0)
	q.EnqueueBatch([]Job{{LineIdx: 1}, {LineIdx: 2}})
	batch := q.DequeueBatch(10)
	if len(batch) != 2 {
		t.Errorf("DequeueBatch(10) len = %d, want 2", len(batch))
	}
	if q.Len() != 0 {
		t.Errorf("Len() after full drain = %d, want 0", q.Len())
	}
}

func TestDequeueOnEmptyReturnsFalse(t *testing.T) {
	q := NewJobQueue(0)
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue() on empty queue returned ok=true")
	}
}
