package dispatch

import (
	"errors"
	"fmt"

	"github.com/kilianp07/queuesim/core/model"
)

// ErrUnknownPolicy is returned when a policy switch names a policy that
// does not exist. The active policy is left unchanged.
var ErrUnknownPolicy = errors.New("unknown dispatch policy")

// Policy is a heuristic dispatch rule. Reorder permutes the waiting queue
// in place and is invoked under the queue lock right before the head is
// popped; PickWorker receives the workers in pool order under the pool
// lock and returns the worker to assign to, or nil when none has spare
// capacity.
type Policy interface {
	// Name is the stable key used to select the policy.
	Name() string
	// DisplayName is the human-readable label shown on the dashboard.
	DisplayName() string
	Reorder(items []*model.WorkItem)
	PickWorker(workers []*model.Worker) *model.Worker
}

// Policy keys accepted by ForName.
const (
	PolicyRoundRobin  = "round_robin"
	PolicyPriority    = "priority"
	PolicyShortestJob = "shortest_job"
)

// ForName returns the policy registered under the given key.
func ForName(name string) (Policy, error) {
	switch name {
	case PolicyRoundRobin:
		return RoundRobinPolicy{}, nil
	case PolicyPriority:
		return PriorityPolicy{}, nil
	case PolicyShortestJob:
		return ShortestJobPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PolicyNames lists the valid policy keys.
func PolicyNames() []string {
	return []string{PolicyRoundRobin, PolicyPriority, PolicyShortestJob}
}
