package walletrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements ports.WalletRepository using GORM.
type GormWalletRepository struct {
	db *gorm.DB
}

func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// GetForUpdate creates the wallet on first use, then locks its row. Two
// concurrent first uses both succeed: the insert is a no-op for the loser.
func (r *GormWalletRepository) GetForUpdate(ctx context.Context, ownerID string) (*wallet.Wallet, error) {
	return r.load(ctx, ownerID, true)
}

func (r *GormWalletRepository) GetOrCreate(ctx context.Context, ownerID string) (*wallet.Wallet, error) {
	return r.load(ctx, ownerID, false)
}

func (r *GormWalletRepository) load(ctx context.Context, ownerID string, lock bool) (*wallet.Wallet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errs.NewValueIsRequiredError("ownerID")
	}

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&WalletDTO{OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}).Error
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto WalletDTO
	if err = db.First(&dto, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", ownerID)
		}
		return nil, err
	}

	return walletToDomain(dto), nil
}

func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := walletFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WalletDTO{}).
		Where("owner_id = ?", dto.OwnerID).
		Updates(map[string]any{"balance": dto.Balance, "updated_at": dto.UpdatedAt})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrCheckConstraintViolated) {
			return errs.NewInsufficientFundsError(dto.OwnerID, dto.Balance, 0)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wallet", dto.OwnerID)
	}
	return nil
}

func (r *GormWalletRepository) AppendTransaction(ctx context.Context, tx *wallet.Transaction) error {
	if tx == nil {
		return errs.NewValueIsRequiredError("transaction")
	}
	dto := transactionFromDomain(tx)
	return r.db.WithContext(ctx).Create(&dto).Error
}
