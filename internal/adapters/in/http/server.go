package http

import (
	"context"
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type (
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	RequestHandler[Q, R any] interface {
		Handle(ctx context.Context, req Q) (R, error)
	}
)

// Handlers lists the use cases the HTTP API exposes.
type Handlers struct {
	Checkout         RequestHandler[commands.CheckoutCommand, commands.CheckoutResult]
	MarkReady        CommandHandler[commands.MarkOrderReadyCommand]
	Claim            CommandHandler[commands.ClaimOrderCommand]
	Deliver          CommandHandler[commands.DeliverOrderCommand]
	Complete         CommandHandler[commands.CompleteOrderCommand]
	Cancel           CommandHandler[commands.CancelOrderCommand]
	ReportLocation   RequestHandler[commands.ReportLocationCommand, commands.ReportLocationResult]
	TopUp            RequestHandler[commands.TopUpWalletCommand, commands.TopUpWalletResult]
	GetOrder         RequestHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders       RequestHandler[queries.ListOrdersQuery, queries.ListOrdersResponse]
	GetProgress      RequestHandler[queries.GetOrderProgressQuery, queries.ProgressView]
	GetWallet        RequestHandler[queries.GetWalletQuery, queries.WalletView]
	ListTransactions RequestHandler[queries.ListWalletTransactionsQuery, queries.ListWalletTransactionsResponse]
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the generated ServerInterface on top of the use cases.
// Handlers return errors as is; errorHandler renders them.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// Checkout handles POST /api/v1/checkout.
func (s *Server) Checkout(c echo.Context, params servers.CheckoutParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var body servers.CheckoutRequest
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	lines := make([]commands.CheckoutLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = commands.CheckoutLine{ProductID: item.ProductId, Quantity: item.Quantity}
	}

	cmd, err := commands.NewCheckoutCommand(actor, lines, body.DeliveryAddress, string(body.PaymentMethod), deref(params.IdempotencyKey))
	if err != nil {
		return err
	}

	result, err := s.h.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	if !result.Replayed {
		for _, g := range result.Groups {
			metrics.CheckoutGroupsTotal.WithLabelValues(g.Status).Inc()
		}
	}

	if result.Created() == 0 && len(result.Groups) > 0 {
		first := result.Groups[0]
		status := statusOf(first.ErrorKind)
		return c.JSON(status, servers.Error{Code: status, Kind: string(first.ErrorKind), Message: first.Error})
	}

	return c.JSON(http.StatusCreated, toCheckoutResponse(result))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context, params servers.ListOrdersParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	filter := queries.OrderFilter{
		BuyerID:    deref(params.BuyerId),
		MerchantID: deref(params.MerchantId),
		CourierID:  deref(params.CourierId),
	}
	if params.Status != nil {
		filter.Status = string(*params.Status)
	}

	query, err := queries.NewListOrdersQuery(actor, filter, deref(params.Limit), deref(params.Offset))
	if err != nil {
		return err
	}

	res, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	list := servers.OrderList{Limit: res.Limit, Offset: res.Offset, Orders: make([]servers.Order, len(res.Orders))}
	for i, o := range res.Orders {
		list.Orders[i] = toOrder(o)
	}
	return c.JSON(http.StatusOK, list)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, id, actor)
}

// MarkOrderReady handles POST /api/v1/orders/{orderId}/ready.
func (s *Server) MarkOrderReady(c echo.Context, orderId servers.OrderId) error {
	return s.transition(c, "ready", orderId, func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error {
		cmd, err := commands.NewMarkOrderReadyCommand(id, actor)
		if err != nil {
			return err
		}
		return s.h.MarkReady.Handle(ctx, cmd)
	})
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim.
func (s *Server) ClaimOrder(c echo.Context, orderId servers.OrderId) error {
	return s.transition(c, "claim", orderId, func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error {
		cmd, err := commands.NewClaimOrderCommand(id, actor)
		if err != nil {
			return err
		}
		return s.h.Claim.Handle(ctx, cmd)
	})
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(c echo.Context, orderId servers.OrderId) error {
	return s.transition(c, "deliver", orderId, func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error {
		cmd, err := commands.NewDeliverOrderCommand(id, actor)
		if err != nil {
			return err
		}
		return s.h.Deliver.Handle(ctx, cmd)
	})
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(c echo.Context, orderId servers.OrderId) error {
	return s.transition(c, "complete", orderId, func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error {
		cmd, err := commands.NewCompleteOrderCommand(id, actor)
		if err != nil {
			return err
		}
		return s.h.Complete.Handle(ctx, cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context, orderId servers.OrderId) error {
	var body servers.CancelOrderRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&body); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("body", err)
		}
	}

	return s.transition(c, "cancel", orderId, func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error {
		cmd, err := commands.NewCancelOrderCommand(id, actor, deref(body.Reason))
		if err != nil {
			return err
		}
		return s.h.Cancel.Handle(ctx, cmd)
	})
}

// ReportLocation handles PUT /api/v1/orders/{orderId}/location.
func (s *Server) ReportLocation(c echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return err
	}

	var body servers.LocationReport
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewReportLocationCommand(id, actor, body.Lat, body.Lng, deref(body.CapturedAt))
	if err != nil {
		return err
	}

	res, err := s.h.ReportLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	metrics.LocationSamplesTotal.WithLabelValues(sampleResult(res)).Inc()

	out := servers.LocationResult{Accepted: res.Accepted}
	if res.Reason != "" {
		reason := res.Reason
		out.Reason = &reason
	}
	return c.JSON(http.StatusOK, out)
}

// GetOrderProgress handles GET /api/v1/orders/{orderId}/progress.
func (s *Server) GetOrderProgress(c echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderProgressQuery(id, actor)
	if err != nil {
		return err
	}

	progress, err := s.h.GetProgress.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProgress(progress))
}

// GetWallet handles GET /api/v1/wallet.
func (s *Server) GetWallet(c echo.Context, params servers.GetWalletParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetWalletQuery(actor, deref(params.OwnerId))
	if err != nil {
		return err
	}

	w, err := s.h.GetWallet.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, servers.Wallet{OwnerId: w.OwnerID, Balance: w.Balance, UpdatedAt: w.UpdatedAt})
}

// TopUpWallet handles POST /api/v1/wallet/topups.
func (s *Server) TopUpWallet(c echo.Context, params servers.TopUpWalletParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var body servers.TopUpRequest
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewTopUpWalletCommand(actor, body.Amount, deref(params.IdempotencyKey))
	if err != nil {
		return err
	}

	res, err := s.h.TopUp.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if !res.Replayed {
		metrics.WalletTopUpsTotal.Inc()
	}

	txID, err := kernel.UUIDFromString(res.TransactionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, servers.TopUpResult{TransactionId: txID.Bytes(), Balance: res.Balance})
}

// ListWalletTransactions handles GET /api/v1/wallet/transactions.
func (s *Server) ListWalletTransactions(c echo.Context, params servers.ListWalletTransactionsParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListWalletTransactionsQuery(actor, deref(params.OwnerId), deref(params.Limit), deref(params.Offset))
	if err != nil {
		return err
	}

	res, err := s.h.ListTransactions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactions(res))
}

// transition runs a state change and answers with the order as the caller
// now sees it.
func (s *Server) transition(
	c echo.Context,
	name string,
	orderId servers.OrderId,
	apply func(ctx context.Context, id kernel.UUID, actor kernel.Actor) error,
) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return err
	}

	err = apply(c.Request().Context(), id, actor)
	metrics.OrderTransitionsTotal.WithLabelValues(name, transitionResult(err)).Inc()
	if err != nil {
		return err
	}

	return s.respondWithOrder(c, id, actor)
}

func (s *Server) respondWithOrder(c echo.Context, id kernel.UUID, actor kernel.Actor) error {
	query, err := queries.NewGetOrderQuery(id, actor)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(view))
}

func transitionResult(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return kindTimeout
	}
	return string(errs.KindOf(err))
}

func sampleResult(res commands.ReportLocationResult) string {
	switch res.Reason {
	case commands.LocationAccepted:
		return "accepted"
	case commands.LocationNotInPickup:
		return "not_in_pickup"
	case commands.LocationNotAssigned:
		return "not_assigned"
	case commands.LocationStale:
		return "stale"
	default:
		return "ignored"
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
