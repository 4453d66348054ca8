package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionView struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	OrderID     *string   `json:"orderId,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListWalletTransactionsResponse struct {
	OwnerID      string            `json:"ownerId"`
	Transactions []TransactionView `json:"transactions"`
}

type ListWalletTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewListWalletTransactionsQueryHandler(db *gorm.DB) ListWalletTransactionsQueryHandler {
	return ListWalletTransactionsQueryHandler{db: db}
}

func (h ListWalletTransactionsQueryHandler) Handle(
	ctx context.Context,
	query ListWalletTransactionsQuery,
) (ListWalletTransactionsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListWalletTransactionsResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, kind, amount, order_id, status, description, created_at
		FROM wallet_transactions
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, query.OwnerID(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return ListWalletTransactionsResponse{}, err
	}
	defer rows.Close()

	res := ListWalletTransactionsResponse{OwnerID: query.OwnerID(), Transactions: make([]TransactionView, 0)}
	for rows.Next() {
		var (
			tx      TransactionView
			id      uuid.UUID
			orderID uuid.NullUUID
		)
		if err = rows.Scan(&id, &tx.Kind, &tx.Amount, &orderID, &tx.Status, &tx.Description, &tx.CreatedAt); err != nil {
			return ListWalletTransactionsResponse{}, err
		}

		tx.ID = id.String()
		if orderID.Valid {
			s := orderID.UUID.String()
			tx.OrderID = &s
		}
		tx.CreatedAt = tx.CreatedAt.UTC()
		res.Transactions = append(res.Transactions, tx)
	}

	return res, rows.Err()
}
