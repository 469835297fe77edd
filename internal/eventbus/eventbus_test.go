package eventbus_test

import (
	"testing"
	"time"

	"github.com/kilianp07/queuesim/core/events"
	"github.com/kilianp07/queuesim/core/model"
	"github.com/kilianp07/queuesim/internal/eventbus"
)

func TestBusDeliversSimulationEvents(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	now := time.Now()
	bus.Publish(events.ArrivalEvent{ItemID: "a1b2c3d4", Tier: model.TierVIP, ServiceSeconds: 12, Time: now})
	bus.Publish(events.CompletionEvent{ItemID: "a1b2c3d4", WorkerID: "w1", WaitSeconds: 2.5})

	arrival, ok := (<-sub).(events.ArrivalEvent)
	if !ok {
		t.Fatalf("expected an ArrivalEvent first")
	}
	if arrival.ItemID != "a1b2c3d4" || arrival.Tier != model.TierVIP {
		t.Fatalf("unexpected arrival payload: %+v", arrival)
	}
	completion, ok := (<-sub).(events.CompletionEvent)
	if !ok {
		t.Fatalf("expected a CompletionEvent second")
	}
	if completion.WorkerID != "w1" {
		t.Fatalf("unexpected completion payload: %+v", completion)
	}
}

func TestBusFanoutToAllSubscribers(t *testing.T) {
	bus := eventbus.New()
	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()

	bus.Publish(events.PolicyChangedEvent{Policy: "priority"})
	for _, sub := range []<-chan eventbus.Event{sub1, sub2} {
		ev, ok := (<-sub).(events.PolicyChangedEvent)
		if !ok || ev.Policy != "priority" {
			t.Fatalf("expected the policy change on every subscriber, got %v", ev)
		}
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	// nobody drains: publishes beyond the buffer must be dropped, not block
	for i := 0; i < 100; i++ {
		bus.Publish(events.ArrivalEvent{ItemID: "x"})
	}
	if len(sub) == 0 {
		t.Fatalf("expected the buffer to hold the first events")
	}
}

func TestBusClose(t *testing.T) {
	bus := eventbus.New()
	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-sub1; ok {
		t.Fatalf("expected sub1 closed")
	}
	if _, ok := <-sub2; ok {
		t.Fatalf("expected sub2 closed")
	}
	// publishing on a closed bus is a no-op
	bus.Publish(events.ArrivalEvent{ItemID: "late"})
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := eventbus.New()
	bus.Close()
	sub := bus.Subscribe()
	if _, ok := <-sub; ok {
		t.Fatalf("expected channel closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(sub)
}
