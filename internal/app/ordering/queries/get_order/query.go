package get_order

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
)

// Request identifies the order and who is asking. Non-admin viewers only see their own
// orders; anything else is reported as not found.
type Request struct {
	OrderID  string
	ViewerID string
	IsAdmin  bool
}

// Query handles the get order query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new get order query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute retrieves an order by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	var order *domain.Order
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		order, err = tx.Orders().GetByID(ctx, req.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !req.IsAdmin && !order.OwnedBy(req.ViewerID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, req.OrderID)
	}
	return order, nil
}
