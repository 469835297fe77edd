package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/queuesim/core/metrics"
	"github.com/kilianp07/queuesim/core/model"
)

type captureSink struct {
	completions []coremetrics.CompletionRecord
	assignments []coremetrics.AssignmentRecord
	depths      []int
}

func (c *captureSink) RecordCompletions(recs []coremetrics.CompletionRecord) error {
	c.completions = append(c.completions, recs...)
	return nil
}

func (c *captureSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	c.assignments = append(c.assignments, rec)
	return nil
}

func (c *captureSink) RecordQueueDepth(depth int) error {
	c.depths = append(c.depths, depth)
	return nil
}

// completionOnlySink implements only the base Sink interface.
type completionOnlySink struct{ completions int }

func (c *completionOnlySink) RecordCompletions(recs []coremetrics.CompletionRecord) error {
	c.completions += len(recs)
	return nil
}

func TestMultiSinkFanout(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	m := NewMultiSink(a, b)

	rec := coremetrics.CompletionRecord{
		ItemID:         "item1",
		Tier:           model.TierVIP,
		WorkerID:       "w1",
		WaitSeconds:    2,
		ServiceSeconds: 10,
		Time:           time.Now(),
	}
	require.NoError(t, m.RecordCompletions([]coremetrics.CompletionRecord{rec}))
	assert.Len(t, a.completions, 1)
	assert.Len(t, b.completions, 1)

	require.NoError(t, m.RecordAssignment(coremetrics.AssignmentRecord{ItemID: "item1", WorkerID: "w1"}))
	assert.Len(t, a.assignments, 1)

	require.NoError(t, m.RecordQueueDepth(3))
	assert.Equal(t, []int{3}, a.depths)
}

func TestMultiSinkSkipsUnsupported(t *testing.T) {
	base := &completionOnlySink{}
	m := NewMultiSink(base)
	require.NoError(t, m.RecordAssignment(coremetrics.AssignmentRecord{}))
	require.NoError(t, m.RecordQueueDepth(1))
	require.NoError(t, m.RecordCompletions([]coremetrics.CompletionRecord{{}}))
	assert.Equal(t, 1, base.completions)
}
