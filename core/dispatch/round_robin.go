package dispatch

import "github.com/kilianp07/queuesim/core/model"

// RoundRobinPolicy serves items strictly in arrival order and hands each
// one to the first available worker in pool order. It never reorders the
// queue and ignores priority tiers entirely.
type RoundRobinPolicy struct{}

func (RoundRobinPolicy) Name() string        { return PolicyRoundRobin }
func (RoundRobinPolicy) DisplayName() string { return "Round Robin" }

// Reorder keeps the arrival order untouched.
func (RoundRobinPolicy) Reorder([]*model.WorkItem) {}

// PickWorker returns the first worker with spare capacity.
func (RoundRobinPolicy) PickWorker(workers []*model.Worker) *model.Worker {
	for _, w := range workers {
		if w.Available {
			return w
		}
	}
	return nil
}
