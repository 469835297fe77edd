package model

import (
	"errors"
	"math"
	"time"
)

// ErrWorkerBusy is returned when an assignment is attempted on a worker
// that already runs at capacity.
var ErrWorkerBusy = errors.New("worker has no spare capacity")

// ErrNotAssigned is returned when a completion is reported for an item the
// worker does not currently hold.
var ErrNotAssigned = errors.New("item is not assigned to this worker")

// Worker is a service unit with a bounded number of concurrent items.
// A Worker carries no lock of its own; all mutation happens under the
// owning pool's lock.
type Worker struct {
	ID       string
	Name     string
	Capacity int // max concurrent items, fixed at creation

	CurrentLoad int
	Available   bool // cached: CurrentLoad < Capacity

	Completed           int // items fully served
	TotalServiceSeconds float64
	IdleSeconds         float64
	LastStatusChange    time.Time
}

// NewWorker creates an idle worker with the given capacity.
func NewWorker(id, name string, capacity int, now time.Time) *Worker {
	return &Worker{
		ID:               id,
		Name:             name,
		Capacity:         capacity,
		Available:        capacity > 0,
		LastStatusChange: now,
	}
}

// SpareCapacity returns the number of additional items the worker can take.
func (w *Worker) SpareCapacity() int {
	return w.Capacity - w.CurrentLoad
}

// TryAssign starts service for the item on this worker. It fails without
// side effects when the worker is already at capacity. On success the
// item transitions to InService and records its service start time.
func (w *Worker) TryAssign(item *WorkItem, now time.Time) error {
	if w.CurrentLoad >= w.Capacity {
		return ErrWorkerBusy
	}
	w.CurrentLoad++
	w.Available = w.CurrentLoad < w.Capacity
	item.Status = StatusInService
	item.AssignedWorkerID = w.ID
	item.ServiceStart = now
	return nil
}

// CompleteService finishes service for the item, releases the capacity slot
// and finalizes the item's wait accounting. It returns the measured service
// duration.
func (w *Worker) CompleteService(item *WorkItem, now time.Time) (time.Duration, error) {
	if item.AssignedWorkerID != w.ID || item.Status != StatusInService {
		return 0, ErrNotAssigned
	}
	w.CurrentLoad--
	w.Available = w.CurrentLoad < w.Capacity
	w.Completed++
	dur := now.Sub(item.ServiceStart)
	w.TotalServiceSeconds += dur.Seconds()
	item.Status = StatusCompleted
	item.ServiceEnd = now
	item.WaitSeconds = item.ServiceStart.Sub(item.ArrivalTime).Seconds()
	return dur, nil
}

// RefreshIdle accrues idle time since the last status change. Busy workers
// only advance the stamp; idle time never accrues while at capacity.
func (w *Worker) RefreshIdle(now time.Time) {
	if w.Available {
		w.IdleSeconds += now.Sub(w.LastStatusChange).Seconds()
	}
	w.LastStatusChange = now
}

// UtilizationRate returns the percentage of the worker's observed lifetime
// spent serving, rounded to two decimals. It returns 0 before any time has
// been observed.
func (w *Worker) UtilizationRate(now time.Time) float64 {
	total := w.TotalServiceSeconds + w.IdleSeconds + now.Sub(w.LastStatusChange).Seconds()
	if total <= 0 {
		return 0
	}
	return math.Round(w.TotalServiceSeconds/total*100*100) / 100
}
