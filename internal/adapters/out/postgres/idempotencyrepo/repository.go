// Package idempotencyrepo remembers the outcome of mutating requests by
// client-supplied key.
package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultStaleAfter is far beyond any request timeout. An incomplete
// reservation may belong to a request whose effect committed but whose
// Complete failed, so it is only reclaimed once a client retry is no longer
// plausible.
const DefaultStaleAfter = 24 * time.Hour

type KeyDTO struct {
	Scope     string `gorm:"primaryKey"`
	Key       string `gorm:"primaryKey"`
	Response  []byte
	Completed bool
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (KeyDTO) TableName() string {
	return "idempotency_keys"
}

// GormIdempotencyStore implements ports.IdempotencyStore. A reservation that
// was never completed answers ErrIdempotencyKeyInFlight until staleAfter has
// passed, then it is taken over so the key does not stay blocked forever.
type GormIdempotencyStore struct {
	db         *gorm.DB
	staleAfter time.Duration
	now        func() time.Time
}

func NewGormIdempotencyStore(db *gorm.DB, staleAfter time.Duration) *GormIdempotencyStore {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &GormIdempotencyStore{db: db, staleAfter: staleAfter, now: time.Now}
}

func (s *GormIdempotencyStore) Reserve(ctx context.Context, scope, key string) ([]byte, bool, error) {
	now := s.now().UTC()

	inserted := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&KeyDTO{Scope: scope, Key: key, CreatedAt: now, UpdatedAt: now})
	if inserted.Error != nil {
		return nil, false, inserted.Error
	}
	if inserted.RowsAffected == 1 {
		return nil, false, nil
	}

	var dto KeyDTO
	if err := s.db.WithContext(ctx).First(&dto, "scope = ? AND key = ?", scope, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Released between our insert and read; the caller may retry.
			return nil, false, ports.ErrIdempotencyKeyInFlight
		}
		return nil, false, err
	}
	if dto.Completed {
		return dto.Response, true, nil
	}

	takeover := s.db.WithContext(ctx).Model(&KeyDTO{}).
		Where("scope = ? AND key = ? AND completed = FALSE AND updated_at < ?", scope, key, now.Add(-s.staleAfter)).
		Update("updated_at", now)
	if takeover.Error != nil {
		return nil, false, takeover.Error
	}
	if takeover.RowsAffected == 1 {
		return nil, false, nil
	}

	return nil, false, ports.ErrIdempotencyKeyInFlight
}

func (s *GormIdempotencyStore) Complete(ctx context.Context, scope, key string, response []byte) error {
	return s.db.WithContext(ctx).Model(&KeyDTO{}).
		Where("scope = ? AND key = ?", scope, key).
		Updates(map[string]any{"response": response, "completed": true, "updated_at": s.now().UTC()}).Error
}

func (s *GormIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.db.WithContext(ctx).
		Where("scope = ? AND key = ? AND completed = FALSE", scope, key).
		Delete(&KeyDTO{}).Error
}
