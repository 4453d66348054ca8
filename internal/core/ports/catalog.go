package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Product is the catalog view of a sellable item. The catalog is authoritative
// for name, price, stock and owning merchant.
type Product struct {
	ID              string
	Name            string
	UnitPrice       kernel.Money
	Stock           int
	MerchantID      string
	MerchantName    string
	MerchantAddress string
}

type Catalog interface {
	// GetProduct returns errs.ObjectNotFoundError for unknown products.
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (kernel.Location, error)
}
