package metrics

import coremetrics "github.com/kilianp07/queuesim/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCompletions forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCompletions(recs []coremetrics.CompletionRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCompletions(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordAssignment forwards assignment records when supported by the sink.
func (m *MultiSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	for _, s := range m.Sinks {
		if ar, ok := s.(coremetrics.AssignmentRecorder); ok {
			if err := ar.RecordAssignment(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordQueueDepth forwards queue depth when supported by the sink.
func (m *MultiSink) RecordQueueDepth(depth int) error {
	for _, s := range m.Sinks {
		if qd, ok := s.(coremetrics.QueueDepthRecorder); ok {
			if err := qd.RecordQueueDepth(depth); err != nil {
				return err
			}
		}
	}
	return nil
}
