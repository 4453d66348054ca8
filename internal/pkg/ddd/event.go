package ddd

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact recorded by an aggregate. Events are written to the outbox in
// the transaction that changed the aggregate and are published afterwards.
type Event struct {
	ID            uuid.UUID
	Name          string
	AggregateType string
	AggregateID   string
	OccurredAt    time.Time
	Payload       map[string]any
}

func NewEvent(name, aggregateType, aggregateID string, at time.Time, payload map[string]any) Event {
	return Event{
		ID:            uuid.New(),
		Name:          name,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    at.UTC(),
		Payload:       payload,
	}
}

// Aggregate is implemented by roots that record events.
type Aggregate interface {
	DomainEvents() []Event
	ClearDomainEvents()
}

// EventRecorder is embedded by aggregates.
type EventRecorder struct {
	events []Event
}

func (r *EventRecorder) Record(e Event) {
	r.events = append(r.events, e)
}

func (r *EventRecorder) DomainEvents() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
