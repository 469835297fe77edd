package dispatch

import (
	"sort"

	"github.com/kilianp07/queuesim/core/model"
)

// ShortestJobPolicy serves the cheapest item first, using the priority
// tier only to break duration ties. The item goes to the available worker
// with the smallest current load; load ties fall back to pool order.
type ShortestJobPolicy struct{}

func (ShortestJobPolicy) Name() string        { return PolicyShortestJob }
func (ShortestJobPolicy) DisplayName() string { return "Shortest Job Next" }

// Reorder sorts by ascending service duration, then descending tier.
func (ShortestJobPolicy) Reorder(items []*model.WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ServiceSeconds != items[j].ServiceSeconds {
			return items[i].ServiceSeconds < items[j].ServiceSeconds
		}
		return items[i].Tier > items[j].Tier
	})
}

// PickWorker returns the available worker with the smallest current load.
func (ShortestJobPolicy) PickWorker(workers []*model.Worker) *model.Worker {
	var best *model.Worker
	for _, w := range workers {
		if !w.Available {
			continue
		}
		if best == nil || w.CurrentLoad < best.CurrentLoad {
			best = w
		}
	}
	return best
}
