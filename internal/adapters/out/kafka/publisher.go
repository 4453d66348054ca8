// Package kafka delivers outbox messages to the order events topic.
package kafka

import (
	"context"
	"fmt"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*Publisher)(nil)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewWriter builds a writer that hashes on the message key, so all events of
// one order land on the same partition and keep their order.
func NewWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(m.ID.String())},
				{Key: "event_type", Value: []byte(m.EventName)},
				{Key: "aggregate_type", Value: []byte(m.AggregateType)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}
