package dispatch

import (
	"sync"

	"github.com/kilianp07/queuesim/core/model"
)

// History is the append-only record of completed items. Entries are value
// snapshots and never mutated after append.
type History struct {
	mu    sync.Mutex
	items []model.WorkItem
}

// NewHistory creates an empty history.
func NewHistory() *History { return &History{} }

// Append records a completed item snapshot.
func (h *History) Append(item model.WorkItem) {
	h.mu.Lock()
	h.items = append(h.items, item)
	h.mu.Unlock()
}

// Len returns the number of completed items.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Snapshot returns a copy of all entries in completion order.
func (h *History) Snapshot() []model.WorkItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.WorkItem, len(h.items))
	copy(out, h.items)
	return out
}

// Waits returns the wait time of every entry, for aggregation.
func (h *History) Waits() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	waits := make([]float64, len(h.items))
	for i, it := range h.items {
		waits[i] = it.WaitSeconds
	}
	return waits
}
