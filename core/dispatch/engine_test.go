package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/queuesim/core/model"
)

type nopTestLogger struct{}

func (nopTestLogger) Debugf(string, ...any)        {}
func (nopTestLogger) Debugw(string, map[string]any) {}
func (nopTestLogger) Infof(string, ...any)         {}
func (nopTestLogger) Warnf(string, ...any)         {}
func (nopTestLogger) Errorf(string, ...any)        {}

func testEngine(t *testing.T, policy string, workers []*model.Worker) *Engine {
	t.Helper()
	e, err := NewEngineWithWorkers(Config{DefaultPolicy: policy}, workers, nopTestLogger{}, nil, nil)
	require.NoError(t, err)
	return e
}

func TestNewEngineWithWorkersRejectsNilLogger(t *testing.T) {
	_, err := NewEngineWithWorkers(Config{}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestNewEngineRejectsUnknownDefaultPolicy(t *testing.T) {
	_, err := NewEngineWithWorkers(Config{DefaultPolicy: "bogus"}, nil, nopTestLogger{}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestSetPolicyUnknownLeavesActiveUnchanged(t *testing.T) {
	t0 := time.Now()
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{model.NewWorker("w1", "Alex", 1, t0)})

	_, err := e.SetPolicy("bogus")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Equal(t, PolicyRoundRobin, e.ActivePolicy().Name())

	pol, err := e.SetPolicy(PolicyShortestJob)
	require.NoError(t, err)
	assert.Equal(t, PolicyShortestJob, pol.Name())
	assert.Equal(t, PolicyShortestJob, e.ActivePolicy().Name())
	assert.Equal(t, "Shortest Job Next", e.Metrics().ActivePolicy)
}

func TestDispatchOncePriorityServesVIPFirst(t *testing.T) {
	t0 := time.Now()
	worker := model.NewWorker("w1", "Alex", 2, t0)
	e := testEngine(t, PolicyPriority, []*model.Worker{worker})

	vip := model.NewWorkItem("vip", model.TierVIP, 10, t0)
	normal := model.NewWorkItem("normal", model.TierNormal, 5, t0.Add(time.Second))
	e.queue.Push(vip)
	e.queue.Push(normal)

	require.True(t, e.dispatchOnce(context.Background()))
	assert.Equal(t, model.StatusInService, vip.Status)
	assert.Equal(t, model.StatusWaiting, normal.Status)

	require.True(t, e.dispatchOnce(context.Background()))
	assert.Equal(t, model.StatusInService, normal.Status)
	assert.Equal(t, 2, worker.CurrentLoad)
}

func TestDispatchOnceShortestJobServesCheapestFirst(t *testing.T) {
	t0 := time.Now()
	worker := model.NewWorker("w1", "Alex", 2, t0)
	e := testEngine(t, PolicyShortestJob, []*model.Worker{worker})

	vip := model.NewWorkItem("vip", model.TierVIP, 10, t0)
	normal := model.NewWorkItem("normal", model.TierNormal, 5, t0.Add(time.Second))
	e.queue.Push(vip)
	e.queue.Push(normal)

	require.True(t, e.dispatchOnce(context.Background()))
	assert.Equal(t, model.StatusInService, normal.Status)
	assert.Equal(t, model.StatusWaiting, vip.Status)
}

func TestDispatchOnceNothingToDo(t *testing.T) {
	t0 := time.Now()
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{model.NewWorker("w1", "Alex", 1, t0)})
	assert.False(t, e.dispatchOnce(context.Background()))

	// full pool: the queued item must stay queued
	require.NoError(t, e.pool.workers[0].TryAssign(model.NewWorkItem("a", model.TierNormal, 5, t0), t0))
	e.queue.Push(model.NewWorkItem("b", model.TierNormal, 5, t0))
	assert.False(t, e.dispatchOnce(context.Background()))
	assert.Equal(t, 1, e.queue.Len())
}

func TestMetricsIdempotentUnderFrozenClock(t *testing.T) {
	t0 := time.Now()
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{
		model.NewWorker("w1", "Alex", 2, t0),
		model.NewWorker("w2", "Blake", 2, t0),
	})
	frozen := t0.Add(30 * time.Second)
	e.now = func() time.Time { return frozen }

	first := e.Metrics()
	second := e.Metrics()
	assert.Equal(t, first, second)
	assert.Equal(t, 100.0, first.FairnessScore)
	assert.Equal(t, 0.0, first.AverageWaitSeconds)
	assert.Equal(t, "Round Robin", first.ActivePolicy)
}

func TestMetricsAggregation(t *testing.T) {
	t0 := time.Now()
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{
		model.NewWorker("w1", "Alex", 1, t0),
		model.NewWorker("w2", "Blake", 1, t0),
	})
	e.now = func() time.Time { return t0.Add(time.Minute) }

	done := model.WorkItem{ID: "a", Tier: model.TierNormal, Status: model.StatusCompleted, WaitSeconds: 4}
	e.history.Append(done)
	e.history.Append(model.WorkItem{ID: "b", Status: model.StatusCompleted, WaitSeconds: 6})
	e.queue.Push(model.NewWorkItem("c", model.TierNormal, 5, t0))

	m := e.Metrics()
	assert.Equal(t, 5.0, m.AverageWaitSeconds)
	assert.Equal(t, 2, m.CompletedCount)
	assert.Equal(t, 1, m.QueueDepth)
}

func TestMetricsFairnessDropsWithImbalance(t *testing.T) {
	t0 := time.Now()
	w1 := model.NewWorker("w1", "Alex", 2, t0)
	w2 := model.NewWorker("w2", "Blake", 2, t0)
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{w1, w2})

	balanced := e.Metrics().FairnessScore
	require.NoError(t, w1.TryAssign(model.NewWorkItem("a", model.TierNormal, 5, t0), t0))
	require.NoError(t, w1.TryAssign(model.NewWorkItem("b", model.TierNormal, 5, t0), t0))
	skewed := e.Metrics().FairnessScore

	assert.Equal(t, 100.0, balanced)
	// loads {2, 0}: population stddev 1, score 100 - 100*1
	assert.Equal(t, 0.0, skewed)
	assert.Less(t, skewed, balanced)
}

func TestEngineRunEndToEnd(t *testing.T) {
	t0 := time.Now()
	cfg := Config{
		DefaultPolicy:         PolicyRoundRobin,
		BackoffMS:             10,
		StatusIntervalSeconds: 1,
		Arrival: ArrivalConfig{
			MinIntervalSeconds: 0.01,
			MaxIntervalSeconds: 0.03,
			MinServiceSeconds:  1,
			MaxServiceSeconds:  1,
			NormalWeight:       1,
		},
		Workers: WorkersConfig{Count: 1, Names: []string{"Alex"}, MinCapacity: 2, MaxCapacity: 2},
	}
	workers := []*model.Worker{model.NewWorker("w1", "Alex", 2, t0)}
	e, err := NewEngineWithWorkers(cfg, workers, nopTestLogger{}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	e.Run(ctx)

	inService := 0
	for _, w := range e.pool.Snapshot() {
		inService += w.CurrentLoad
		assert.LessOrEqual(t, w.CurrentLoad, w.Capacity)
		assert.Equal(t, w.CurrentLoad < w.Capacity, w.Available)
	}
	arrived := e.queue.Len() + e.history.Len() + inService
	assert.Positive(t, arrived)
	for _, it := range e.history.Snapshot() {
		assert.Equal(t, model.StatusCompleted, it.Status)
		assert.NotEmpty(t, it.AssignedWorkerID)
		assert.GreaterOrEqual(t, it.WaitSeconds, 0.0)
	}
}

func TestEngineViews(t *testing.T) {
	t0 := time.Now()
	e := testEngine(t, PolicyRoundRobin, []*model.Worker{model.NewWorker("w1", "Alex", 2, t0)})
	e.queue.Push(model.NewWorkItem("a", model.TierCorporate, 7, t0))

	workers := e.Workers()
	require.Len(t, workers, 1)
	assert.Equal(t, "Alex", workers[0].Name)
	assert.True(t, workers[0].Available)

	queued := e.QueueItems()
	require.Len(t, queued, 1)
	assert.Equal(t, "Corporate", queued[0].Priority)
	assert.Equal(t, "Waiting", queued[0].Status)
	assert.Equal(t, "N/A", queued[0].WaitTime)
	assert.Empty(t, e.HistoryItems())
}
