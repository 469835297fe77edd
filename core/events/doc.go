// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - ArrivalEvent: new work item enqueued
//   - AssignmentEvent: item started service on a worker
//   - CompletionEvent: worker finished an item
//   - PolicyChangedEvent: active dispatch policy swapped
package events
