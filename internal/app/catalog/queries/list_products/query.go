package list_products

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Request selects the storefront view (active only) or the admin view (everything).
type Request struct {
	ActiveOnly bool
}

// Query handles the list products query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new list products query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute lists products newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Product, error) {
	var products []*domain.Product
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		products, err = tx.Products().List(ctx, contracts.ProductFilter{ActiveOnly: req.ActiveOnly})
		return err
	})
	return products, err
}
