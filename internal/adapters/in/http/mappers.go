package http

import (
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/generated/servers"

	"github.com/google/uuid"
)

func toOrder(v queries.OrderView) servers.Order {
	res := servers.Order{
		Id:            uuid.MustParse(v.ID),
		Status:        servers.OrderStatus(v.Status),
		Buyer:         servers.Party{Id: v.Buyer.ID, Name: v.Buyer.Name},
		Merchant:      servers.Party{Id: v.Merchant.ID, Name: v.Merchant.Name},
		Origin:        toPlace(v.Origin),
		Destination:   toPlace(v.Destination),
		Items:         make([]servers.Item, len(v.Items)),
		Subtotal:      v.Subtotal,
		DeliveryFee:   v.DeliveryFee,
		Total:         v.Total,
		PaymentMethod: servers.PaymentMethod(v.PaymentMethod),
		PaymentStatus: v.PaymentStatus,
		PickedUpAt:    v.PickedUpAt,
		CancelledAt:   v.CancelledAt,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		Version:       v.Version,
	}

	if v.Courier != nil {
		res.Courier = &servers.Party{Id: v.Courier.ID, Name: v.Courier.Name}
	}
	if v.CancelReason != "" {
		reason := v.CancelReason
		res.CancelReason = &reason
	}
	for i, item := range v.Items {
		res.Items[i] = servers.Item{
			ProductId: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}
	return res
}

func toPlace(p queries.PlaceView) servers.Place {
	return servers.Place{Address: p.Address, Lat: p.Lat, Lng: p.Lng}
}

func toCheckoutResponse(r commands.CheckoutResult) servers.CheckoutResponse {
	res := servers.CheckoutResponse{
		Partial: r.IsPartial(),
		Groups:  make([]servers.CheckoutGroup, len(r.Groups)),
	}

	for i, g := range r.Groups {
		group := servers.CheckoutGroup{
			MerchantId:   g.MerchantID,
			MerchantName: g.MerchantName,
			Status:       servers.CheckoutGroupStatus(g.Status),
			Subtotal:     g.Subtotal,
			DeliveryFee:  g.DeliveryFee,
			Total:        g.Total,
		}
		if g.OrderID != "" {
			id := uuid.MustParse(g.OrderID)
			group.OrderId = &id
		}
		if g.ErrorKind != "" {
			kind, message := string(g.ErrorKind), g.Error
			group.ErrorKind = &kind
			group.Error = &message
		}
		res.Groups[i] = group
	}
	return res
}

func toProgress(p queries.ProgressView) servers.Progress {
	return servers.Progress{
		OrderId:   uuid.MustParse(p.OrderID),
		Status:    servers.OrderStatus(p.Status),
		Fraction:  p.Fraction,
		Source:    servers.ProgressSource(p.Source),
		Available: p.Available,
		SampledAt: p.SampledAt,
	}
}

func toTransactions(r queries.ListWalletTransactionsResponse) servers.TransactionList {
	res := servers.TransactionList{
		OwnerId:      r.OwnerID,
		Transactions: make([]servers.Transaction, len(r.Transactions)),
	}

	for i, tx := range r.Transactions {
		item := servers.Transaction{
			Id:          uuid.MustParse(tx.ID),
			Kind:        servers.TransactionKind(tx.Kind),
			Amount:      tx.Amount,
			Status:      tx.Status,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
		if tx.OrderID != nil {
			id := uuid.MustParse(*tx.OrderID)
			item.OrderId = &id
		}
		res.Transactions[i] = item
	}
	return res
}
