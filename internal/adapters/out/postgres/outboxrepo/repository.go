// Package outboxrepo stores domain events next to the state change that
// produced them, for later delivery by the outbox publisher.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/ddd"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName     string
	AggregateType string
	AggregateID   string
	Payload       string `gorm:"type:jsonb"`
	OccurredAt    time.Time
	PublishedAt   *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, events ...ddd.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return err
		}
		dtos = append(dtos, MessageDTO{
			ID:            e.ID,
			EventName:     e.Name,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID,
			Payload:       string(payload),
			OccurredAt:    e.OccurredAt,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:            dto.ID,
			EventName:     dto.EventName,
			AggregateType: dto.AggregateType,
			AggregateID:   dto.AggregateID,
			Payload:       []byte(dto.Payload),
			OccurredAt:    dto.OccurredAt.UTC(),
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
}
