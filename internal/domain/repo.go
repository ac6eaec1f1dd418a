package domain

import (
	"context"
)

// Catalog is the read side of the product API: the upstream client
// implements it, and so does the caching service in front of it.
type Catalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
}
