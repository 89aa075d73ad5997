// Package history keeps the bounded log of finished tracks.
package history

import (
	"slices"
	"sync"
)

// DefaultCapacity is the number of entries kept before the oldest is dropped.
const DefaultCapacity = 50

// History is an append-only log with head eviction. The tail is the
// most recently finished track.
type History struct {
	mu       sync.Mutex
	ids      []int
	capacity int
}

// New creates a history that holds at most capacity entries. A
// non-positive capacity uses DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Record appends id, evicting the oldest entry when full.
func (h *History) Record(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, id)
	if len(h.ids) > h.capacity {
		h.ids = slices.Delete(h.ids, 0, len(h.ids)-h.capacity)
	}
}

// Previous discards the tail and returns the new tail. With fewer than
// two entries nothing changes and ok is false.
func (h *History) Previous() (id int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.ids) < 2 {
		return 0, false
	}
	h.ids = h.ids[:len(h.ids)-1]
	return h.ids[len(h.ids)-1], true
}

// Last returns the most recent entry.
func (h *History) Last() (id int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.ids) == 0 {
		return 0, false
	}
	return h.ids[len(h.ids)-1], true
}

// Snapshot returns a copy of the log, oldest first.
func (h *History) Snapshot() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.ids)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ids)
}
