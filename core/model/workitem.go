package model

import "time"

// PriorityTier ranks work items. Higher tiers are served first under the
// priority policy.
type PriorityTier int

const (
	TierNormal    PriorityTier = 1
	TierCorporate PriorityTier = 2
	TierVIP       PriorityTier = 3
)

// String returns a human-readable representation of the tier.
func (t PriorityTier) String() string {
	switch t {
	case TierNormal:
		return "Normal"
	case TierCorporate:
		return "Corporate"
	case TierVIP:
		return "VIP"
	default:
		return "unknown"
	}
}

// Status tracks the lifecycle of a work item. Transitions are one-way:
// Waiting -> InService -> Completed.
type Status int

const (
	StatusWaiting Status = iota
	StatusInService
	StatusCompleted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusInService:
		return "In Service"
	case StatusCompleted:
		return "Completed"
	default:
		return "unknown"
	}
}

// WorkItem represents a unit of work flowing through the service center.
// The service duration is fixed at creation and simulates the cost of the
// work; it is not a deadline.
type WorkItem struct {
	ID               string
	Tier             PriorityTier
	ServiceSeconds   int // simulated service cost, fixed at creation
	ArrivalTime      time.Time
	Status           Status
	AssignedWorkerID string // empty until assigned
	ServiceStart     time.Time
	ServiceEnd       time.Time
	WaitSeconds      float64 // computed at completion
}

// NewWorkItem creates a waiting item with the given identity, tier and
// service cost.
func NewWorkItem(id string, tier PriorityTier, serviceSeconds int, arrival time.Time) *WorkItem {
	return &WorkItem{
		ID:             id,
		Tier:           tier,
		ServiceSeconds: serviceSeconds,
		ArrivalTime:    arrival,
		Status:         StatusWaiting,
	}
}

// ServiceDuration returns the simulated service cost as a duration.
func (w *WorkItem) ServiceDuration() time.Duration {
	return time.Duration(w.ServiceSeconds) * time.Second
}
