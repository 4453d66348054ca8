package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/ddd"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose events must reach the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(aggregate ddd.Aggregate)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(ddd.Aggregate) {}

// NewGormOrderRepository creates a repository bound to db, which is usually a
// transaction. A nil tracker is allowed for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormOrderRepository{db: db, tracker: tracker}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the mutable columns when the stored version still equals the
// version the aggregate was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock that is held until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.Preload("Items", orderedItems).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListDeliveredBefore locks the oldest delivered orders. Rows locked by a
// concurrent settlement run are skipped instead of waited on.
func (r *GormOrderRepository) ListDeliveredBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Preload("Items", orderedItems).
		Where("status = ? AND updated_at < ?", order.Delivered.String(), cutoff).
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
