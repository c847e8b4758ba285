package list_orders

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Request filters the ledger. An empty UserID lists every user's orders (admin view).
type Request struct {
	UserID string
	Status domain.Status
}

// Query handles the list orders query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new list orders query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute lists orders newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Order, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, validation.Single("status", "must be pending, proceeded or cancelled")
	}

	var orders []*domain.Order
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		orders, err = tx.Orders().List(ctx, contracts.OrderFilter{UserID: req.UserID, Status: req.Status})
		return err
	})
	return orders, err
}
