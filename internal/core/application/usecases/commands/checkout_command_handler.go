package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const checkoutIdempotencyScope = "checkout"

// CheckoutCommandHandler splits a cart into one order per merchant.
//
// Everything that can be checked without side effects (catalog lookups, stock,
// geocoding, fee allocation) is done first and fails the whole checkout. Then
// each group runs in its own transaction: create the order, capture payment,
// write the outbox events. A failed group rolls back completely and the
// remaining groups still run; the result lists every group with its outcome.
type CheckoutCommandHandler struct {
	uowFactory  UoWFactory
	catalog     ports.Catalog
	geocoder    ports.Geocoder
	idempotency ports.IdempotencyStore
	splitter    services.CheckoutSplitter
	ledger      services.Ledger
	deliveryFee kernel.Money
	logger      *slog.Logger
	now         func() time.Time
}

func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	catalog ports.Catalog,
	geocoder ports.Geocoder,
	idempotency ports.IdempotencyStore,
	deliveryFee kernel.Money,
	logger *slog.Logger,
) CheckoutCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CheckoutCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		geocoder:    geocoder,
		idempotency: idempotency,
		splitter:    services.NewCheckoutSplitter(),
		ledger:      services.NewLedger(),
		deliveryFee: deliveryFee,
		logger:      logger.With("component", "checkout"),
		now:         time.Now,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	result, replayed, err := withIdempotency(ctx, h.idempotency, h.logger, checkoutIdempotencyScope,
		cmd.Actor(), cmd.IdempotencyKey(),
		func(r CheckoutResult) bool { return r.Created() > 0 },
		func() (CheckoutResult, error) { return h.checkout(ctx, cmd) },
	)
	result.Replayed = replayed
	return result, err
}

func (h CheckoutCommandHandler) checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	lines, err := h.resolveLines(ctx, cmd.Lines())
	if err != nil {
		return CheckoutResult{}, err
	}

	groups, err := h.splitter.Split(lines, h.deliveryFee)
	if err != nil {
		return CheckoutResult{}, err
	}

	buyer, err := order.NewParty(cmd.Actor().ID(), cmd.Actor().Name())
	if err != nil {
		return CheckoutResult{}, err
	}

	destination, err := h.place(ctx, cmd.DeliveryAddress())
	if err != nil {
		return CheckoutResult{}, err
	}

	origins := make([]order.Place, len(groups))
	for i, g := range groups {
		if origins[i], err = h.place(ctx, g.MerchantAddress); err != nil {
			return CheckoutResult{}, err
		}
	}

	result := CheckoutResult{Groups: make([]CheckoutGroupResult, 0, len(groups))}
	for i, g := range groups {
		res := CheckoutGroupResult{
			MerchantID:   g.Merchant.ID(),
			MerchantName: g.Merchant.Name(),
			Subtotal:     int64(g.Subtotal()),
			DeliveryFee:  int64(g.DeliveryFee),
			Total:        int64(g.Subtotal() + g.DeliveryFee),
		}

		o, groupErr := h.placeGroup(ctx, buyer, g, origins[i], destination, cmd.PaymentMethod())
		if groupErr != nil {
			res.Status = GroupFailed
			res.ErrorKind = errs.KindOf(groupErr)
			res.Error = groupErr.Error()
			h.logger.WarnContext(ctx, "checkout group failed",
				"buyer_id", buyer.ID(), "merchant_id", g.Merchant.ID(), "error", groupErr)
		} else {
			res.Status = GroupCreated
			res.OrderID = o.ID().String()
		}
		result.Groups = append(result.Groups, res)
	}

	return result, nil
}

// resolveLines takes name, price and merchant from the catalog and checks the
// summed quantity of each product against its stock.
func (h CheckoutCommandHandler) resolveLines(ctx context.Context, selected []CheckoutLine) ([]services.Line, error) {
	requested := make(map[string]int, len(selected))
	for _, l := range selected {
		requested[l.ProductID] += l.Quantity
	}

	products := make(map[string]ports.Product, len(requested))
	lines := make([]services.Line, 0, len(selected))
	for _, l := range selected {
		p, ok := products[l.ProductID]
		if !ok {
			var err error
			if p, err = h.catalog.GetProduct(ctx, l.ProductID); err != nil {
				return nil, err
			}
			if requested[l.ProductID] > p.Stock {
				return nil, errs.NewInsufficientStockError(p.ID, int64(requested[l.ProductID]), int64(p.Stock))
			}
			products[l.ProductID] = p
		}

		lines = append(lines, services.Line{
			ProductID:       p.ID,
			Name:            p.Name,
			Quantity:        l.Quantity,
			UnitPrice:       p.UnitPrice,
			MerchantID:      p.MerchantID,
			MerchantName:    p.MerchantName,
			MerchantAddress: p.MerchantAddress,
		})
	}
	return lines, nil
}

func (h CheckoutCommandHandler) place(ctx context.Context, address string) (order.Place, error) {
	loc, err := h.geocoder.Resolve(ctx, address)
	if err != nil {
		return order.Place{}, err
	}
	return order.NewPlace(address, loc)
}

func (h CheckoutCommandHandler) placeGroup(
	ctx context.Context,
	buyer order.Party,
	g services.Group,
	origin order.Place,
	destination order.Place,
	method order.PaymentMethod,
) (*order.Order, error) {
	at := h.now().UTC()

	o, err := order.NewOrder(kernel.NewUUID(), buyer, g.Merchant, origin, destination, g.Items, g.DeliveryFee, method, at)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	walletRepo := uow.WalletRepository()

	var w *wallet.Wallet
	if method.UsesWallet() {
		if w, err = walletRepo.GetForUpdate(ctx, buyer.ID()); err != nil {
			return nil, err
		}
	}

	tx, err := h.ledger.Capture(w, o, at)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if tx != nil {
		if err = walletRepo.Update(ctx, w); err != nil {
			return nil, err
		}
		if err = walletRepo.AppendTransaction(ctx, tx); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
