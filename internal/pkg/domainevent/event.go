// Package domainevent holds the event contract shared by all aggregates.
package domainevent

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// Recorder collects events raised by an aggregate until they are persisted.
// Aggregates embed it by value.
type Recorder struct {
	events []Event
}

// Record appends an event.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// DomainEvents returns the recorded events in the order they were raised.
func (r *Recorder) DomainEvents() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ClearEvents drops all recorded events (called after they are written to the outbox).
func (r *Recorder) ClearEvents() {
	r.events = nil
}
