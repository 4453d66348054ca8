package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"

	"github.com/google/uuid"
)

// PublishOutboxCommandHandler delivers one batch of pending events. Rows stay
// locked while publishing, so a message is marked published only after the
// sink accepted it. Delivery is at least once.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewPublishOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher, now: time.Now}
}

func (h PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.FetchUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err = outboxRepo.MarkPublished(ctx, ids, h.now().UTC()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(ids), nil
}
