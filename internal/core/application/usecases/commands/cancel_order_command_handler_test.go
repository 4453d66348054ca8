package commands_test

import (
	"strings"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand_ReasonTooLong(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), mustActor(t, "buyer-1", kernel.RoleBuyer),
		strings.Repeat("x", 501))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCancelOrderCommandHandler_Handle_RefundsWallet(t *testing.T) {
	ctx := t.Context()
	o := orderFixture(t, order.Preparing, order.PaymentWallet, order.PaymentPaid)
	w := wallet.RestoreWallet("buyer-1", 5000, now, now)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), mustActor(t, "buyer-1", kernel.RoleBuyer), "changed my mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	cache := new(MockOrderCache)
	locations := new(MockLocationStore)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		walletRepo.On("GetForUpdate", ctx, "buyer-1").Return(w, nil).Once(),
		walletRepo.On("Update", ctx, w).Return(nil).Once(),
		walletRepo.On("AppendTransaction", ctx, mock.MatchedBy(func(tx *wallet.Transaction) bool {
			return tx.Kind() == wallet.KindRefund && tx.Amount() == 35000
		})).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx, []kernel.UUID{o.ID()}).Return(nil).Once(),
		locations.On("Delete", ctx, o.ID()).Return(nil).Once(),
	)
	// Rollback is deferred and runs after the post-commit steps.
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCancelOrderCommandHandler(factory, cache, locations, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	assert.Equal(t, kernel.Money(40000), w.Balance())
	orderRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CardIsMarkedRefunded(t *testing.T) {
	ctx := t.Context()
	o := orderFixture(t, order.Ready, order.PaymentCard, order.PaymentPaid)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), mustActor(t, "merchant-1", kernel.RoleMerchant), "out of stock")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCancelOrderCommandHandler(factory, nil, nil, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	walletRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		actor   kernel.Actor
		wantErr error
	}{
		{name: "buyer after ready", status: order.Ready, actor: mustActor(t, "buyer-1", kernel.RoleBuyer), wantErr: errs.ErrForbidden},
		{name: "courier", status: order.Pickup, actor: mustActor(t, "courier-1", kernel.RoleCourier), wantErr: errs.ErrForbidden},
		{name: "completed order", status: order.Completed, actor: mustActor(t, "admin-1", kernel.RoleAdmin), wantErr: errs.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := orderFixture(t, tt.status, order.PaymentWallet, order.PaymentPaid)
			cmd, err := commands.NewCancelOrderCommand(o.ID(), tt.actor, "")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			walletRepo := new(MockWalletRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			uow.On("WalletRepository").Return(walletRepo).Once()
			orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			err = commands.NewCancelOrderCommandHandler(factory, nil, nil, nil).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
			walletRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
