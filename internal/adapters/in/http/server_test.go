package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRequestHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockRequestHandler[Q, R]) Handle(ctx context.Context, req Q) (R, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(R)
	return res, args.Error(1)
}

type testHandlers struct {
	checkout       *MockRequestHandler[commands.CheckoutCommand, commands.CheckoutResult]
	claim          *MockCommandHandler[commands.ClaimOrderCommand]
	cancel         *MockCommandHandler[commands.CancelOrderCommand]
	reportLocation *MockRequestHandler[commands.ReportLocationCommand, commands.ReportLocationResult]
	topUp          *MockRequestHandler[commands.TopUpWalletCommand, commands.TopUpWalletResult]
	getOrder       *MockRequestHandler[queries.GetOrderQuery, queries.OrderView]
	listOrders     *MockRequestHandler[queries.ListOrdersQuery, queries.ListOrdersResponse]
	getWallet      *MockRequestHandler[queries.GetWalletQuery, queries.WalletView]
}

func newTestRouter(t *testing.T) (*echo.Echo, testHandlers) {
	t.Helper()

	h := testHandlers{
		checkout:       new(MockRequestHandler[commands.CheckoutCommand, commands.CheckoutResult]),
		claim:          new(MockCommandHandler[commands.ClaimOrderCommand]),
		cancel:         new(MockCommandHandler[commands.CancelOrderCommand]),
		reportLocation: new(MockRequestHandler[commands.ReportLocationCommand, commands.ReportLocationResult]),
		topUp:          new(MockRequestHandler[commands.TopUpWalletCommand, commands.TopUpWalletResult]),
		getOrder:       new(MockRequestHandler[queries.GetOrderQuery, queries.OrderView]),
		listOrders:     new(MockRequestHandler[queries.ListOrdersQuery, queries.ListOrdersResponse]),
		getWallet:      new(MockRequestHandler[queries.GetWalletQuery, queries.WalletView]),
	}

	server := NewServer(Handlers{
		Checkout:       h.checkout,
		Claim:          h.claim,
		Cancel:         h.cancel,
		ReportLocation: h.reportLocation,
		TopUp:          h.topUp,
		GetOrder:       h.getOrder,
		ListOrders:     h.listOrders,
		GetWallet:      h.getWallet,
	})

	e, err := NewRouter(server, RouterOptions{RequestTimeout: time.Second})
	require.NoError(t, err)
	return e, h
}

func do(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func as(id, role string) map[string]string {
	return map[string]string{HeaderActorID: id, HeaderActorRole: role, HeaderActorName: id}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func orderView(id kernel.UUID, status string) queries.OrderView {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return queries.OrderView{
		ID:            id.String(),
		Status:        status,
		Buyer:         queries.PartyView{ID: "buyer-1", Name: "Ani"},
		Merchant:      queries.PartyView{ID: "merchant-1", Name: "Store A"},
		Courier:       &queries.PartyView{ID: "courier-1", Name: "Budi"},
		Items:         []queries.ItemView{{ProductID: "p-1", Name: "Kopi", Quantity: 3, UnitPrice: 10000, LineTotal: 30000}},
		Subtotal:      30000,
		DeliveryFee:   5000,
		Total:         35000,
		PaymentMethod: "wallet",
		PaymentStatus: "paid",
		CreatedAt:     at,
		UpdatedAt:     at,
		Version:       3,
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodGet, "/health", "", nil)

	rec := do(e, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestMissingIdentity(t *testing.T) {
	e, h := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Kind)
	h.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestSystemRoleIsNotAcceptedFromHeaders(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/wallet", "", as("system", "system"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckout_Created(t *testing.T) {
	e, h := newTestRouter(t)
	orderID := kernel.NewUUID()

	h.checkout.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CheckoutCommand) bool {
		return cmd.Actor().ID() == "buyer-1" &&
			cmd.IdempotencyKey() == "key-1" &&
			len(cmd.Lines()) == 2 &&
			cmd.DeliveryAddress() == "Jl. Pajajaran 45"
	})).Return(commands.CheckoutResult{Groups: []commands.CheckoutGroupResult{
		{MerchantID: "merchant-a", MerchantName: "Store A", Status: commands.GroupCreated, OrderID: orderID.String(),
			Subtotal: 30000, DeliveryFee: 5000, Total: 35000},
		{MerchantID: "merchant-b", MerchantName: "Store B", Status: commands.GroupFailed,
			Subtotal: 12000, DeliveryFee: 5000, Total: 17000, ErrorKind: errs.KindInsufficientFunds, Error: "insufficient funds"},
	}}, nil).Once()

	headers := as("buyer-1", "buyer")
	headers["Idempotency-Key"] = "key-1"
	rec := do(e, http.MethodPost, "/api/v1/checkout", `{
		"items": [{"productId": "p-1", "quantity": 3}, {"productId": "p-2", "quantity": 1}],
		"deliveryAddress": "Jl. Pajajaran 45",
		"paymentMethod": "wallet"
	}`, headers)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body servers.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Partial)
	require.Len(t, body.Groups, 2)
	require.NotNil(t, body.Groups[0].OrderId)
	assert.Equal(t, orderID.String(), body.Groups[0].OrderId.String())
	assert.Equal(t, int64(35000), body.Groups[0].Total)
	require.NotNil(t, body.Groups[1].ErrorKind)
	assert.Equal(t, "insufficient_funds", *body.Groups[1].ErrorKind)
	h.checkout.AssertExpectations(t)
}

func TestCheckout_NothingCreated(t *testing.T) {
	e, h := newTestRouter(t)

	h.checkout.On("Handle", mock.Anything, mock.Anything).Return(commands.CheckoutResult{Groups: []commands.CheckoutGroupResult{
		{MerchantID: "merchant-a", Status: commands.GroupFailed, ErrorKind: errs.KindInsufficientFunds, Error: "insufficient funds"},
	}}, nil).Once()

	rec := do(e, http.MethodPost, "/api/v1/checkout",
		`{"items": [{"productId": "p-1", "quantity": 1}], "deliveryAddress": "Jl. Pajajaran 45", "paymentMethod": "wallet"}`,
		as("buyer-1", "buyer"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "insufficient_funds", decodeError(t, rec).Kind)
}

func TestCheckout_RejectedBySchema(t *testing.T) {
	e, h := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/checkout",
		`{"items": [{"productId": "p-1", "quantity": 0}], "deliveryAddress": "x", "paymentMethod": "bitcoin"}`,
		as("buyer-1", "buyer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Kind)
	h.checkout.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCheckout_EmptySelection(t *testing.T) {
	e, h := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/checkout",
		`{"items": [], "deliveryAddress": "Jl. Pajajaran 45", "paymentMethod": "cash"}`,
		as("buyer-1", "buyer"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "empty_selection", decodeError(t, rec).Kind)
	h.checkout.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCheckout_MerchantIsForbidden(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/checkout",
		`{"items": [{"productId": "p-1", "quantity": 1}], "deliveryAddress": "Jl. Pajajaran 45", "paymentMethod": "cash"}`,
		as("merchant-1", "merchant"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Kind)
}

func TestClaimOrder(t *testing.T) {
	t.Run("winner gets the order", func(t *testing.T) {
		e, h := newTestRouter(t)
		id := kernel.NewUUID()

		h.claim.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ClaimOrderCommand) bool {
			return cmd.OrderID().IsEqual(id) && cmd.Actor().ID() == "courier-1"
		})).Return(nil).Once()
		h.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID().IsEqual(id)
		})).Return(orderView(id, "pickup"), nil).Once()

		rec := do(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/claim", "", as("courier-1", "courier"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body servers.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, servers.OrderStatusPickup, body.Status)
		require.NotNil(t, body.Courier)
		assert.Equal(t, "courier-1", body.Courier.Id)
		assert.Equal(t, int64(35000), body.Total)
	})

	t.Run("loser gets conflict", func(t *testing.T) {
		e, h := newTestRouter(t)
		id := kernel.NewUUID()

		h.claim.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewConflictError("order", id.String())).Once()

		rec := do(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/claim", "", as("courier-2", "courier"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", decodeError(t, rec).Kind)
		h.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("invalid transition", func(t *testing.T) {
		e, h := newTestRouter(t)
		id := kernel.NewUUID()

		h.claim.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewInvalidTransitionError("preparing", "pickup")).Once()

		rec := do(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/claim", "", as("courier-2", "courier"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "invalid_transition", decodeError(t, rec).Kind)
	})
}

func TestCancelOrder_PassesReason(t *testing.T) {
	e, h := newTestRouter(t)
	id := kernel.NewUUID()

	h.cancel.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return cmd.Reason() == "changed my mind"
	})).Return(nil).Once()
	h.getOrder.On("Handle", mock.Anything, mock.Anything).Return(orderView(id, "cancelled"), nil).Once()

	rec := do(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/cancel", `{"reason": "changed my mind"}`, as("buyer-1", "buyer"))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.cancel.AssertExpectations(t)
}

func TestGetOrder_BadID(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/orders/not-a-uuid", "", as("buyer-1", "buyer"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	e, h := newTestRouter(t)
	id := kernel.NewUUID()

	h.getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{}, errs.NewObjectNotFoundError("order", id.String())).Once()

	rec := do(e, http.MethodGet, "/api/v1/orders/"+id.String(), "", as("buyer-1", "buyer"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Kind)
}

func TestInternalErrorIsHidden(t *testing.T) {
	e, h := newTestRouter(t)

	h.getWallet.On("Handle", mock.Anything, mock.Anything).
		Return(queries.WalletView{}, errors.New("pq: connection refused")).Once()

	rec := do(e, http.MethodGet, "/api/v1/wallet", "", as("buyer-1", "buyer"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "internal", body.Kind)
	assert.NotContains(t, body.Message, "pq")
}

func TestReportLocation(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		e, h := newTestRouter(t)
		id := kernel.NewUUID()

		h.reportLocation.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReportLocationCommand) bool {
			return cmd.Location().Lat() == -6.5975 && cmd.Location().Lng() == 106.805
		})).Return(commands.ReportLocationResult{Accepted: true}, nil).Once()

		rec := do(e, http.MethodPut, "/api/v1/orders/"+id.String()+"/location",
			`{"lat": -6.5975, "lng": 106.805, "capturedAt": "2025-03-01T09:01:00Z"}`, as("courier-1", "courier"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"accepted": true}`, rec.Body.String())
	})

	t.Run("ignored sample is not an error", func(t *testing.T) {
		e, h := newTestRouter(t)
		id := kernel.NewUUID()

		h.reportLocation.On("Handle", mock.Anything, mock.Anything).
			Return(commands.ReportLocationResult{Accepted: false, Reason: commands.LocationNotAssigned}, nil).Once()

		rec := do(e, http.MethodPut, "/api/v1/orders/"+id.String()+"/location",
			`{"lat": -6.5975, "lng": 106.805}`, as("courier-2", "courier"))
		require.Equal(t, http.StatusOK, rec.Code)

		var body servers.LocationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Accepted)
		require.NotNil(t, body.Reason)
		assert.Equal(t, commands.LocationNotAssigned, *body.Reason)
	})

	t.Run("out of range latitude", func(t *testing.T) {
		e, h := newTestRouter(t)

		rec := do(e, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/location",
			`{"lat": 120, "lng": 106.805}`, as("courier-1", "courier"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		h.reportLocation.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestTopUpWallet(t *testing.T) {
	e, h := newTestRouter(t)
	txID := kernel.NewUUID()

	h.topUp.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TopUpWalletCommand) bool {
		return cmd.Amount() == 10000 && cmd.IdempotencyKey() == "top-1"
	})).Return(commands.TopUpWalletResult{TransactionID: txID.String(), Balance: 10000}, nil).Once()

	headers := as("buyer-1", "buyer")
	headers["Idempotency-Key"] = "top-1"
	rec := do(e, http.MethodPost, "/api/v1/wallet/topups", `{"amount": 10000}`, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body servers.TopUpResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, txID.String(), body.TransactionId.String())
	assert.Equal(t, int64(10000), body.Balance)
}

func TestTopUpWallet_ReplayIsNotCountedAgain(t *testing.T) {
	e, h := newTestRouter(t)
	txID := kernel.NewUUID()
	applied := commands.TopUpWalletResult{TransactionID: txID.String(), Balance: 10000}
	replayed := applied
	replayed.Replayed = true

	h.topUp.On("Handle", mock.Anything, mock.Anything).Return(applied, nil).Once()
	h.topUp.On("Handle", mock.Anything, mock.Anything).Return(replayed, nil).Once()

	headers := as("buyer-1", "buyer")
	headers["Idempotency-Key"] = "top-1"
	before := testutil.ToFloat64(metrics.WalletTopUpsTotal)

	for range 2 {
		rec := do(e, http.MethodPost, "/api/v1/wallet/topups", `{"amount": 10000}`, headers)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WalletTopUpsTotal)-before)
}

func TestCheckout_ReplayIsNotCountedAgain(t *testing.T) {
	e, h := newTestRouter(t)
	groups := []commands.CheckoutGroupResult{{
		MerchantID: "merchant-1", MerchantName: "Store A", Status: commands.GroupCreated,
		OrderID: kernel.NewUUID().String(), Subtotal: 30000, DeliveryFee: 10000, Total: 40000,
	}}

	h.checkout.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CheckoutResult{Groups: groups}, nil).Once()
	h.checkout.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CheckoutResult{Groups: groups, Replayed: true}, nil).Once()

	headers := as("buyer-1", "buyer")
	headers["Idempotency-Key"] = "cart-1"
	body := `{"items": [{"productId": "p-1", "quantity": 3}], "deliveryAddress": "Jl. Pajajaran 1", "paymentMethod": "wallet"}`
	before := testutil.ToFloat64(metrics.CheckoutGroupsTotal.WithLabelValues(commands.GroupCreated))

	for range 2 {
		rec := do(e, http.MethodPost, "/api/v1/checkout", body, headers)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CheckoutGroupsTotal.WithLabelValues(commands.GroupCreated))-before)
}

func TestTopUpWallet_BelowMinimum(t *testing.T) {
	e, h := newTestRouter(t)

	h.topUp.On("Handle", mock.Anything, mock.Anything).
		Return(commands.TopUpWalletResult{}, errs.NewInvalidAmountError("amount", 9999, 10000)).Once()

	rec := do(e, http.MethodPost, "/api/v1/wallet/topups", `{"amount": 9999}`, as("buyer-1", "buyer"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_amount", decodeError(t, rec).Kind)
}

func TestListOrders_PassesFilters(t *testing.T) {
	e, h := newTestRouter(t)
	id := kernel.NewUUID()

	h.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Filter().MerchantID == "merchant-1" && q.Limit() == 10 && q.Offset() == 20 && q.Status() != nil
	})).Return(queries.ListOrdersResponse{Orders: []queries.OrderView{orderView(id, "ready")}, Limit: 10, Offset: 20}, nil).Once()

	rec := do(e, http.MethodGet, "/api/v1/orders?merchantId=merchant-1&status=ready&limit=10&offset=20", "", as("admin-1", "admin"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body servers.OrderList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, id.String(), body.Orders[0].Id.String())
}

func TestListOrders_LimitAboveMaximum(t *testing.T) {
	e, h := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/orders?limit=500", "", as("admin-1", "admin"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	h.listOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
