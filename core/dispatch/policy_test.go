package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/queuesim/core/model"
)

func TestForName(t *testing.T) {
	for _, name := range PolicyNames() {
		pol, err := ForName(name)
		require.NoError(t, err)
		assert.Equal(t, name, pol.Name())
		assert.NotEmpty(t, pol.DisplayName())
	}
	_, err := ForName("bogus")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestRoundRobinNeverReorders(t *testing.T) {
	now := time.Now()
	items := []*model.WorkItem{
		model.NewWorkItem("a", model.TierNormal, 30, now),
		model.NewWorkItem("b", model.TierVIP, 5, now.Add(time.Second)),
		model.NewWorkItem("c", model.TierCorporate, 10, now.Add(2*time.Second)),
	}
	RoundRobinPolicy{}.Reorder(items)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestPriorityReorderTierThenArrival(t *testing.T) {
	now := time.Now()
	items := []*model.WorkItem{
		model.NewWorkItem("n1", model.TierNormal, 10, now),
		model.NewWorkItem("v1", model.TierVIP, 10, now.Add(3*time.Second)),
		model.NewWorkItem("c1", model.TierCorporate, 10, now.Add(time.Second)),
		model.NewWorkItem("v2", model.TierVIP, 10, now.Add(5*time.Second)),
		model.NewWorkItem("n2", model.TierNormal, 10, now.Add(2*time.Second)),
	}
	PriorityPolicy{}.Reorder(items)
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	// a VIP that arrived later still jumps every lower tier
	assert.Equal(t, []string{"v1", "v2", "c1", "n1", "n2"}, got)
}

func TestShortestJobReorderDurationThenTier(t *testing.T) {
	now := time.Now()
	items := []*model.WorkItem{
		model.NewWorkItem("slow", model.TierVIP, 25, now),
		model.NewWorkItem("fastNormal", model.TierNormal, 5, now.Add(time.Second)),
		model.NewWorkItem("fastVIP", model.TierVIP, 5, now.Add(2*time.Second)),
		model.NewWorkItem("mid", model.TierCorporate, 12, now.Add(3*time.Second)),
	}
	ShortestJobPolicy{}.Reorder(items)
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	assert.Equal(t, []string{"fastVIP", "fastNormal", "mid", "slow"}, got)
}

func TestPriorityPickWorkerMostSpareCapacity(t *testing.T) {
	t0 := time.Now()
	w1 := model.NewWorker("w1", "Alex", 2, t0)
	w2 := model.NewWorker("w2", "Blake", 3, t0)
	require.NoError(t, w1.TryAssign(model.NewWorkItem("a", model.TierNormal, 5, t0), t0))
	// w1 spare 1, w2 spare 3
	assert.Equal(t, "w2", PriorityPolicy{}.PickWorker([]*model.Worker{w1, w2}).ID)
}

func TestPriorityPickWorkerTieFallsBackToPoolOrder(t *testing.T) {
	t0 := time.Now()
	w1 := model.NewWorker("w1", "Alex", 2, t0)
	w2 := model.NewWorker("w2", "Blake", 2, t0)
	assert.Equal(t, "w1", PriorityPolicy{}.PickWorker([]*model.Worker{w1, w2}).ID)
}

func TestShortestJobPickWorkerLeastLoaded(t *testing.T) {
	t0 := time.Now()
	w1 := model.NewWorker("w1", "Alex", 3, t0)
	w2 := model.NewWorker("w2", "Blake", 3, t0)
	require.NoError(t, w1.TryAssign(model.NewWorkItem("a", model.TierNormal, 5, t0), t0))
	assert.Equal(t, "w2", ShortestJobPolicy{}.PickWorker([]*model.Worker{w1, w2}).ID)
}

func TestPickWorkerSkipsFullWorkers(t *testing.T) {
	t0 := time.Now()
	w := model.NewWorker("w1", "Alex", 1, t0)
	require.NoError(t, w.TryAssign(model.NewWorkItem("a", model.TierNormal, 5, t0), t0))
	pool := []*model.Worker{w}
	assert.Nil(t, RoundRobinPolicy{}.PickWorker(pool))
	assert.Nil(t, PriorityPolicy{}.PickWorker(pool))
	assert.Nil(t, ShortestJobPolicy{}.PickWorker(pool))
}
