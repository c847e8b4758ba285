package get_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Query handles the get cart query use case.
type Query struct {
	carts contracts.CartStore
}

// NewQuery creates a new get cart query.
func NewQuery(carts contracts.CartStore) *Query {
	return &Query{carts: carts}
}

// Execute returns the user's cart, empty if none is stored.
func (q *Query) Execute(ctx context.Context, userID string) (*domain.Cart, error) {
	return q.carts.Load(ctx, userID)
}
