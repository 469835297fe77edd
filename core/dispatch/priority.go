package dispatch

import (
	"sort"

	"github.com/kilianp07/queuesim/core/model"
)

// PriorityPolicy serves the highest tier first, breaking ties within a
// tier by arrival order. The item goes to the worker with the most spare
// capacity; capacity ties fall back to pool order.
type PriorityPolicy struct{}

func (PriorityPolicy) Name() string        { return PolicyPriority }
func (PriorityPolicy) DisplayName() string { return "Priority Scheduling" }

// Reorder sorts by descending tier, then ascending arrival time. The sort
// is stable so equal items keep their arrival order.
func (PriorityPolicy) Reorder(items []*model.WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Tier != items[j].Tier {
			return items[i].Tier > items[j].Tier
		}
		return items[i].ArrivalTime.Before(items[j].ArrivalTime)
	})
}

// PickWorker returns the available worker with the most spare capacity.
func (PriorityPolicy) PickWorker(workers []*model.Worker) *model.Worker {
	var best *model.Worker
	for _, w := range workers {
		if !w.Available {
			continue
		}
		if best == nil || w.SpareCapacity() > best.SpareCapacity() {
			best = w
		}
	}
	return best
}
