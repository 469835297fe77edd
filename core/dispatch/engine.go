package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/queuesim/core/events"
	"github.com/kilianp07/queuesim/core/logger"
	"github.com/kilianp07/queuesim/core/metrics"
	"github.com/kilianp07/queuesim/core/model"
	"github.com/kilianp07/queuesim/internal/eventbus"
)

// Engine runs the simulation: it generates arrivals, repeatedly applies
// the active policy to match waiting items with worker capacity, serves
// each assignment on its own goroutine and keeps the completion history.
// Reads for the API surface are point-in-time snapshots and never block
// dispatching.
type Engine struct {
	cfg     Config
	queue   *Queue
	pool    *Pool
	history *History
	gen     *Generator

	mu     sync.RWMutex
	policy Policy

	log  logger.Logger
	sink metrics.Sink
	bus  eventbus.EventBus

	now func() time.Time
	wg  sync.WaitGroup
}

// NewEngine creates an engine with a generated worker roster. The sink and
// bus may be nil.
func NewEngine(cfg Config, log logger.Logger, sink metrics.Sink, bus eventbus.EventBus) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	workers := BuildWorkers(cfg.Workers, rng, time.Now())
	return NewEngineWithWorkers(cfg, workers, log, sink, bus)
}

// NewEngineWithWorkers creates an engine over an explicit worker roster.
func NewEngineWithWorkers(cfg Config, workers []*model.Worker, log logger.Logger, sink metrics.Sink, bus eventbus.EventBus) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("dispatch: nil logger provided to NewEngineWithWorkers")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	pol, err := ForName(cfg.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		queue:   NewQueue(),
		pool:    NewPool(workers),
		history: NewHistory(),
		gen:     NewGenerator(cfg.Arrival, time.Now().UnixNano()),
		policy:  pol,
		log:     log,
		sink:    sink,
		bus:     bus,
		now:     time.Now,
	}, nil
}

// Run starts the arrival, dispatch and idle-accounting loops and blocks
// until the context is canceled. In-flight simulated service is abandoned
// on shutdown without recording a completion.
func (e *Engine) Run(ctx context.Context) {
	e.wg.Add(3)
	go e.runArrivals(ctx)
	go e.runDispatcher(ctx)
	go e.runIdleTicker(ctx)
	e.wg.Wait()
}

// runArrivals produces work items at random intervals. It is the only
// writer that adds items to the queue.
func (e *Engine) runArrivals(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(e.gen.NextInterval()):
		}
		item := e.gen.NewItem(e.now())
		e.queue.Push(item)
		itemsArrived.WithLabelValues(item.Tier.String()).Inc()
		e.recordQueueDepth()
		e.publish(events.ArrivalEvent{
			ItemID:         item.ID,
			Tier:           item.Tier,
			ServiceSeconds: item.ServiceSeconds,
			Time:           item.ArrivalTime,
		})
		e.log.Infof("new item %s arrived, priority %s, service %ds", item.ID, item.Tier, item.ServiceSeconds)
	}
}

// runDispatcher repeatedly applies the active policy, backing off when
// there is nothing to dispatch.
func (e *Engine) runDispatcher(ctx context.Context) {
	defer e.wg.Done()
	backoff := time.Duration(e.cfg.BackoffMS) * time.Millisecond
	for {
		if ctx.Err() != nil {
			return
		}
		if e.dispatchOnce(ctx) {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// runIdleTicker refreshes per-worker idle accounting periodically.
func (e *Engine) runIdleTicker(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(time.Duration(e.cfg.StatusIntervalSeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.pool.RefreshIdle(now)
			e.log.Debugf("worker statuses updated")
		}
	}
}

// dispatchOnce performs one dispatch attempt: reorder-and-pop under the
// queue lock, then select-and-assign under the pool lock, then serve the
// assignment on its own goroutine. It returns false when nothing was
// dispatched.
func (e *Engine) dispatchOnce(ctx context.Context) bool {
	pol := e.ActivePolicy()
	if !e.pool.HasSpare() {
		return false
	}
	item := e.queue.Dequeue(pol.Reorder)
	if item == nil {
		return false
	}
	worker, err := e.pool.Assign(pol.PickWorker, item, e.now())
	if err != nil {
		// Capacity vanished between the spare check and the pop, or a
		// detected race. Put the item back and retry next cycle.
		e.queue.Requeue(item)
		if errors.Is(err, ErrAssignmentRace) {
			assignRaces.Inc()
			e.log.Warnf("assignment race detected: %v", err)
		}
		return false
	}
	e.recordQueueDepth()
	e.publish(events.AssignmentEvent{
		ItemID:   item.ID,
		WorkerID: worker.ID,
		Tier:     item.Tier,
		Policy:   pol.Name(),
		Time:     item.ServiceStart,
	})
	if ar, ok := e.sink.(metrics.AssignmentRecorder); ok {
		if rerr := ar.RecordAssignment(metrics.AssignmentRecord{
			ItemID:   item.ID,
			WorkerID: worker.ID,
			Tier:     item.Tier,
			Policy:   pol.Name(),
			Time:     item.ServiceStart,
		}); rerr != nil {
			e.log.Errorf("assignment metrics error: %v", rerr)
		}
	}
	e.log.Infof("item %s assigned to worker %s (%s)", item.ID, worker.ID, worker.Name)
	e.wg.Add(1)
	go e.serve(ctx, item)
	return true
}

// serve blocks for the item's simulated service cost, then completes it.
// One goroutine per assignment keeps workers with spare capacity
// dispatchable while this item is in service.
func (e *Engine) serve(ctx context.Context, item *model.WorkItem) {
	defer e.wg.Done()
	select {
	case <-ctx.Done():
		return
	case <-time.After(item.ServiceDuration()):
	}
	now := e.now()
	dur, err := e.pool.Complete(item, now)
	if err != nil {
		e.log.Errorf("completion failed: %v", err)
		return
	}
	snapshot := *item
	e.history.Append(snapshot)
	itemsCompleted.WithLabelValues(snapshot.Tier.String()).Inc()
	waitSeconds.WithLabelValues(snapshot.Tier.String()).Observe(snapshot.WaitSeconds)
	if rerr := e.sink.RecordCompletions([]metrics.CompletionRecord{{
		ItemID:         snapshot.ID,
		Tier:           snapshot.Tier,
		WorkerID:       snapshot.AssignedWorkerID,
		WaitSeconds:    snapshot.WaitSeconds,
		ServiceSeconds: dur.Seconds(),
		Time:           now,
	}}); rerr != nil {
		e.log.Errorf("completion metrics error: %v", rerr)
	}
	e.publish(events.CompletionEvent{
		ItemID:         snapshot.ID,
		WorkerID:       snapshot.AssignedWorkerID,
		Tier:           snapshot.Tier,
		WaitSeconds:    snapshot.WaitSeconds,
		ServiceSeconds: dur.Seconds(),
		Time:           now,
	})
	e.log.Infof("item %s completed by worker %s", snapshot.ID, snapshot.AssignedWorkerID)
}

// SetPolicy swaps the active policy. Unknown names leave the active
// policy unchanged and return ErrUnknownPolicy.
func (e *Engine) SetPolicy(name string) (Policy, error) {
	pol, err := ForName(name)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.policy = pol
	e.mu.Unlock()
	policySwitches.WithLabelValues(pol.Name()).Inc()
	e.publish(events.PolicyChangedEvent{Policy: pol.Name(), Time: e.now()})
	e.log.Infof("active policy switched to %s", pol.DisplayName())
	return pol, nil
}

// ActivePolicy returns the currently active policy.
func (e *Engine) ActivePolicy() Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy
}

// Workers returns a point-in-time projection of the worker pool.
func (e *Engine) Workers() []WorkerView {
	now := e.now()
	workers := e.pool.Snapshot()
	views := make([]WorkerView, len(workers))
	for i, w := range workers {
		views[i] = NewWorkerView(w, now)
	}
	return views
}

// QueueItems returns a point-in-time projection of the waiting queue.
func (e *Engine) QueueItems() []WorkItemView {
	items := e.queue.Snapshot()
	views := make([]WorkItemView, len(items))
	for i, it := range items {
		views[i] = NewWorkItemView(it)
	}
	return views
}

// HistoryItems returns the completed items in completion order.
func (e *Engine) HistoryItems() []WorkItemView {
	items := e.history.Snapshot()
	views := make([]WorkItemView, len(items))
	for i, it := range items {
		views[i] = NewWorkItemView(it)
	}
	return views
}

// Metrics aggregates current state into the reported metrics. The fairness
// score is 100 minus the population standard deviation of worker loads,
// scaled by 100; it is deliberately unclamped so severe imbalance shows as
// a negative score.
func (e *Engine) Metrics() MetricsView {
	now := e.now()
	var avgWait float64
	if waits := e.history.Waits(); len(waits) > 0 {
		avgWait = stat.Mean(waits, nil)
	}
	var utilization float64
	workers := e.pool.Snapshot()
	if len(workers) > 0 {
		rates := make([]float64, len(workers))
		for i, w := range workers {
			rates[i] = w.UtilizationRate(now)
		}
		utilization = stat.Mean(rates, nil)
	}
	fairness := 100.0
	if loads := e.pool.Loads(); len(loads) > 0 {
		fairness = 100 - 100*stat.PopStdDev(loads, nil)
	}
	return MetricsView{
		AverageWaitSeconds:      round2(avgWait),
		AgentUtilizationPercent: round2(utilization),
		FairnessScore:           round2(fairness),
		CompletedCount:          e.history.Len(),
		QueueDepth:              e.queue.Len(),
		ActivePolicy:            e.ActivePolicy().DisplayName(),
	}
}

func (e *Engine) recordQueueDepth() {
	depth := e.queue.Len()
	queueDepth.Set(float64(depth))
	if qd, ok := e.sink.(metrics.QueueDepthRecorder); ok {
		if err := qd.RecordQueueDepth(depth); err != nil {
			e.log.Errorf("queue depth metrics error: %v", err)
		}
	}
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
