package metrics

import (
	"time"

	"github.com/kilianp07/queuesim/core/model"
)

// CompletionRecord represents a finished work item to be recorded.
type CompletionRecord struct {
	ItemID         string
	Tier           model.PriorityTier
	WorkerID       string
	WaitSeconds    float64
	ServiceSeconds float64
	Time           time.Time
}

// Sink records completion events for observability purposes.
type Sink interface {
	RecordCompletions(records []CompletionRecord) error
}

// AssignmentRecord represents an item starting service.
type AssignmentRecord struct {
	ItemID   string
	WorkerID string
	Tier     model.PriorityTier
	Policy   string
	Time     time.Time
}

// AssignmentRecorder records assignments when supported by the sink.
type AssignmentRecorder interface {
	RecordAssignment(rec AssignmentRecord) error
}

// QueueDepthRecorder records the waiting queue depth when supported by
// the sink.
type QueueDepthRecorder interface {
	RecordQueueDepth(depth int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordCompletions([]CompletionRecord) error { return nil }
func (NopSink) RecordAssignment(AssignmentRecord) error    { return nil }
func (NopSink) RecordQueueDepth(int) error                 { return nil }
