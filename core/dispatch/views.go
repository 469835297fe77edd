package dispatch

import (
	"math"
	"time"

	"github.com/kilianp07/queuesim/core/model"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// WorkerView is the read-only JSON projection of a worker.
type WorkerView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Capacity        int     `json:"capacity"`
	CurrentLoad     int     `json:"current_load"`
	Available       bool    `json:"available"`
	CompletedCount  int     `json:"completed_count"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// NewWorkerView projects a worker snapshot.
func NewWorkerView(w model.Worker, now time.Time) WorkerView {
	return WorkerView{
		ID:              w.ID,
		Name:            w.Name,
		Capacity:        w.Capacity,
		CurrentLoad:     w.CurrentLoad,
		Available:       w.Available,
		CompletedCount:  w.Completed,
		UtilizationRate: w.UtilizationRate(now),
	}
}

// WorkItemView is the read-only JSON projection of a work item. WaitTime
// holds the wait in seconds once known, or the string "N/A" while the
// item has not started service.
type WorkItemView struct {
	ID             string `json:"id"`
	Priority       string `json:"priority"`
	ServiceSeconds int    `json:"service_seconds"`
	ArrivalTime    string `json:"arrival_time"`
	Status         string `json:"status"`
	AssignedWorker string `json:"assigned_worker,omitempty"`
	WaitTime       any    `json:"wait_time"`
}

// NewWorkItemView projects a work item snapshot.
func NewWorkItemView(it model.WorkItem) WorkItemView {
	v := WorkItemView{
		ID:             it.ID,
		Priority:       it.Tier.String(),
		ServiceSeconds: it.ServiceSeconds,
		ArrivalTime:    it.ArrivalTime.Format("15:04:05"),
		Status:         it.Status.String(),
		AssignedWorker: it.AssignedWorkerID,
		WaitTime:       "N/A",
	}
	if it.Status == model.StatusCompleted {
		v.WaitTime = round2(it.WaitSeconds)
	}
	return v
}

// MetricsView is the aggregated state reported to observers. ActivePolicy
// carries the policy's display name, which is what the dashboard shows.
type MetricsView struct {
	AverageWaitSeconds      float64 `json:"average_wait_seconds"`
	AgentUtilizationPercent float64 `json:"agent_utilization_percent"`
	FairnessScore           float64 `json:"fairness_score"`
	CompletedCount          int     `json:"completed_count"`
	QueueDepth              int     `json:"queue_depth"`
	ActivePolicy            string  `json:"active_policy"`
}
