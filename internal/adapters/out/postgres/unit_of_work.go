// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// share that transaction and register the aggregates they write; on Commit the
// events recorded by those aggregates are appended to the outbox in the same
// transaction, so a state change and its notification are stored atomically.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/ddd"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		tracked: make([]ddd.Aggregate, 0),
		seen:    make(map[ddd.Aggregate]struct{}),
	}
}

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []ddd.Aggregate
	seen    map[ddd.Aggregate]struct{}
}

// Begin is idempotent: a second call on an open unit of work does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes pending events to the outbox and commits. When the outbox
// write fails the transaction is rolled back and nothing is persisted.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	events := uow.pendingEvents()
	if len(events) > 0 {
		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events...); err != nil {
			_ = uow.tx.Rollback().Error
			uow.reset()
			return err
		}
	}

	err := uow.tx.Commit().Error
	if err == nil {
		for _, a := range uow.tracked {
			a.ClearDomainEvents()
		}
	}
	uow.reset()
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when nothing is open, which
// callers deferring it after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.reset()
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) WalletRepository() ports.WalletRepository {
	return walletrepo.NewGormWalletRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written in this unit of work. Repeated
// registrations of the same aggregate are ignored.
func (uow *GormUnitOfWork) TrackAggregate(aggregate ddd.Aggregate) {
	if aggregate == nil {
		return
	}
	if _, ok := uow.seen[aggregate]; ok {
		return
	}
	uow.seen[aggregate] = struct{}{}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) pendingEvents() []ddd.Event {
	var events []ddd.Event
	for _, a := range uow.tracked {
		events = append(events, a.DomainEvents()...)
	}
	return events
}

func (uow *GormUnitOfWork) reset() {
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	uow.seen = make(map[ddd.Aggregate]struct{})
}
