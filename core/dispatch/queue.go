package dispatch

import (
	"sync"

	"github.com/kilianp07/queuesim/core/model"
)

// Queue is the waiting line of pending work items. Items are kept in
// arrival order; a policy may permute them in place right before a pop,
// and both steps happen under one lock section so concurrent arrivals
// never observe a half-sorted queue.
type Queue struct {
	mu    sync.Mutex
	items []*model.WorkItem
}

// NewQueue creates an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Push appends an item to the back of the queue.
func (q *Queue) Push(item *model.WorkItem) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Requeue puts an item back at the head of the queue. Used when an
// assignment could not be carried out after the item was already popped.
func (q *Queue) Requeue(item *model.WorkItem) {
	q.mu.Lock()
	q.items = append([]*model.WorkItem{item}, q.items...)
	q.mu.Unlock()
}

// Dequeue runs the reorder function over the pending items and pops the
// resulting head. Reorder may be nil for arrival-order dequeueing. It
// returns nil when the queue is empty.
func (q *Queue) Dequeue(reorder func([]*model.WorkItem)) *model.WorkItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	if reorder != nil {
		reorder(q.items)
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

// Len returns the number of waiting items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns a copy of the pending items in their current order.
func (q *Queue) Snapshot() []model.WorkItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.WorkItem, len(q.items))
	for i, it := range q.items {
		out[i] = *it
	}
	return out
}
