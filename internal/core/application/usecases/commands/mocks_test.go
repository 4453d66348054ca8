package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/ddd"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, ownerID string) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetOrCreate(ctx context.Context, ownerID string) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) AppendTransaction(ctx context.Context, tx *wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events ...ddd.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) Get(ctx context.Context, id kernel.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockOrderCache) Set(ctx context.Context, id kernel.UUID, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockOrderCache) Invalidate(ctx context.Context, ids ...kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockLocationStore struct{ mock.Mock }

func (m *MockLocationStore) Save(ctx context.Context, s tracking.Sample) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationStore) Get(ctx context.Context, id kernel.UUID) (*tracking.Sample, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Sample), args.Error(1)
}

func (m *MockLocationStore) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, scope, key string) ([]byte, bool, error) {
	args := m.Called(ctx, scope, key)
	var data []byte
	if args.Get(0) != nil {
		data = args.Get(0).([]byte)
	}
	return data, args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, scope, key string, response []byte) error {
	args := m.Called(ctx, scope, key, response)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	args := m.Called(ctx, scope, key)
	return args.Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (ports.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Product), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (kernel.Location, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func mustActor(t *testing.T, id string, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role, id+" name")
	require.NoError(t, err)
	return a
}

// orderFixture builds a stored order owned by buyer-1 and merchant-1.
func orderFixture(t *testing.T, status order.Status, method order.PaymentMethod, paid order.PaymentStatus) *order.Order {
	t.Helper()

	buyer, err := order.NewParty("buyer-1", "Ani")
	require.NoError(t, err)
	merchant, err := order.NewParty("merchant-1", "Store A")
	require.NoError(t, err)
	origin, err := order.NewPlace("Jl. Suryakencana 1", kernel.MustLocation(-6.5950, 106.8000))
	require.NoError(t, err)
	destination, err := order.NewPlace("Jl. Pajajaran 10", kernel.MustLocation(-6.6000, 106.8100))
	require.NoError(t, err)
	item, err := order.NewItem("p-1", "Kopi", 3, 10000)
	require.NoError(t, err)

	var courier *order.Party
	var pickedUpAt *time.Time
	if status.HasCourier() {
		c, err := order.NewParty("courier-1", "Budi")
		require.NoError(t, err)
		courier = &c
		at := now.Add(-10 * time.Minute)
		pickedUpAt = &at
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		Buyer:         buyer,
		Merchant:      merchant,
		Origin:        origin,
		Destination:   destination,
		Items:         []order.Item{item},
		Subtotal:      30000,
		DeliveryFee:   5000,
		Total:         35000,
		PaymentMethod: method,
		PaymentStatus: paid,
		Status:        status,
		Courier:       courier,
		PickedUpAt:    pickedUpAt,
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now.Add(-time.Hour),
		Version:       1,
	})
}
