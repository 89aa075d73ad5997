// Package queue implements the ordered list of upcoming tracks.
package queue

import (
	"slices"
	"sync"
)

// Queue is an unbounded, concurrency-safe list of track IDs.
type Queue struct {
	mu  sync.Mutex
	ids []int
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends id to the tail.
func (q *Queue) Enqueue(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, id)
}

// EnqueueAll appends ids to the tail in order.
func (q *Queue) EnqueueAll(ids ...int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, ids...)
}

// Replace discards the queue contents and installs ids.
func (q *Queue) Replace(ids []int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = slices.Clone(ids)
}

// DequeueFront removes and returns the head. ok is false when the
// queue is empty.
func (q *Queue) DequeueFront() (id int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) == 0 {
		return 0, false
	}
	id = q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// RemoveAt deletes the entry at index. An out-of-range index is a
// no-op and reports false.
func (q *Queue) RemoveAt(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.ids) {
		return false
	}
	q.ids = slices.Delete(q.ids, index, index+1)
	return true
}

// Reorder moves the entry at from so that it ends up at index to,
// shifting the entries in between. Equal or out-of-range indices are
// a no-op and report false.
func (q *Queue) Reorder(from, to int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.ids)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	id := q.ids[from]
	q.ids = slices.Delete(q.ids, from, from+1)
	q.ids = slices.Insert(q.ids, to, id)
	return true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = nil
}

// Snapshot returns a copy of the queue in order.
func (q *Queue) Snapshot() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.ids)
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

// IsEmpty returns true if nothing is queued.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
