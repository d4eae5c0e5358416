package state

import "sync"

// Scheduler decides when a notification callback runs.
type Scheduler interface {
	Schedule(fn func())
}

// Queue defers callbacks until Flush. Event loops use it to apply all
// notifications of one iteration at a single point.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn to the queue.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Flush runs queued callbacks in order, including callbacks queued while
// flushing, and returns how many ran.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	ran := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
		}
		ran += len(batch)
	}
}
