package dispatch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/queuesim/core/model"
)

// ErrNoSpareCapacity is the normal "all workers are full" outcome of a
// dispatch attempt. It is handled by backoff, not surfaced as a failure.
var ErrNoSpareCapacity = errors.New("no worker has spare capacity")

// ErrAssignmentRace reports a worker that was selected with spare capacity
// but full by the time of mutation. The locking discipline makes this
// unreachable; it is kept as invariant protection.
var ErrAssignmentRace = errors.New("selected worker was full at assignment time")

// Pool owns the workers. Iteration order is fixed at construction and all
// read-filter-then-mutate sequences run under one lock, so a spare slot
// can never be double-assigned. The lock order across the engine is
// always queue before pool.
type Pool struct {
	mu      sync.Mutex
	workers []*model.Worker
}

// NewPool creates a pool over the given workers, keeping their order.
func NewPool(workers []*model.Worker) *Pool {
	return &Pool{workers: workers}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// HasSpare reports whether any worker can take another item.
func (p *Pool) HasSpare() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		if w.Available {
			return true
		}
	}
	return false
}

// Assign runs the policy's worker selection and the assignment itself in a
// single critical section. pick receives the workers in pool order and
// must return one of them or nil.
func (p *Pool) Assign(pick func([]*model.Worker) *model.Worker, item *model.WorkItem, now time.Time) (*model.Worker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w := pick(p.workers)
	if w == nil {
		return nil, ErrNoSpareCapacity
	}
	if err := w.TryAssign(item, now); err != nil {
		return nil, fmt.Errorf("%w: worker %s", ErrAssignmentRace, w.ID)
	}
	return w, nil
}

// Complete finishes service for the item on its assigned worker and
// returns the measured service duration.
func (p *Pool) Complete(item *model.WorkItem, now time.Time) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		if w.ID == item.AssignedWorkerID {
			return w.CompleteService(item, now)
		}
	}
	return 0, fmt.Errorf("complete %s: %w", item.ID, model.ErrNotAssigned)
}

// RefreshIdle updates idle accounting for every worker.
func (p *Pool) RefreshIdle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		w.RefreshIdle(now)
	}
}

// Loads returns the current load of each worker in pool order.
func (p *Pool) Loads() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	loads := make([]float64, len(p.workers))
	for i, w := range p.workers {
		loads[i] = float64(w.CurrentLoad)
	}
	return loads
}

// Snapshot returns a copy of every worker in pool order.
func (p *Pool) Snapshot() []model.Worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Worker, len(p.workers))
	for i, w := range p.workers {
		out[i] = *w
	}
	return out
}
