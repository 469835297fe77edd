package events

import (
	"time"

	"github.com/kilianp07/queuesim/core/model"
)

// ArrivalEvent is published when the generator enqueues a new item.
type ArrivalEvent struct {
	ItemID         string
	Tier           model.PriorityTier
	ServiceSeconds int
	Time           time.Time
}

// AssignmentEvent is published when an item starts service on a worker.
type AssignmentEvent struct {
	ItemID   string
	WorkerID string
	Tier     model.PriorityTier
	Policy   string
	Time     time.Time
}

// CompletionEvent is published when a worker finishes an item.
type CompletionEvent struct {
	ItemID         string
	WorkerID       string
	Tier           model.PriorityTier
	WaitSeconds    float64
	ServiceSeconds float64
	Time           time.Time
}

// PolicyChangedEvent is published when the active policy is swapped.
type PolicyChangedEvent struct {
	Policy string
	Time   time.Time
}
