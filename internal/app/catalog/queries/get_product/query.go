package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Request contains the product ID to retrieve. Inactive products are reported as not
// found unless IncludeInactive is set.
type Request struct {
	ProductID       string
	IncludeInactive bool
}

// Query handles the get product query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new get product query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute retrieves a product by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	var product *domain.Product
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		product, err = tx.Products().GetByID(ctx, req.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !product.IsActive() && !req.IncludeInactive {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, req.ProductID)
	}
	return product, nil
}
