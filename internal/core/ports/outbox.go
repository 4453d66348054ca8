package ports

import (
	"context"
	"time"

	"marketplace/internal/pkg/ddd"

	"github.com/google/uuid"
)

// OutboxMessage is a domain event waiting to be delivered to the notification sink.
type OutboxMessage struct {
	ID            uuid.UUID
	EventName     string
	AggregateType string
	AggregateID   string
	Payload       []byte
	OccurredAt    time.Time
}

type OutboxRepository interface {
	Append(ctx context.Context, events ...ddd.Event) error

	// FetchUnpublished locks and returns the oldest pending messages. Concurrent
	// publishers skip rows locked by each other.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the notification sink.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
