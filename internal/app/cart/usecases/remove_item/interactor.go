package remove_item

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request removes one product from the cart.
type Request struct {
	UserID    string
	ProductID string
}

// Interactor handles the remove item use case.
type Interactor struct {
	carts contracts.CartStore
	clock clock.Clock
}

// NewInteractor creates a new remove item interactor.
func NewInteractor(carts contracts.CartStore, clock clock.Clock) *Interactor {
	return &Interactor{
		carts: carts,
		clock: clock,
	}
}

// Execute removes the entry if present.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	cart, err := i.carts.Load(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	cart.Remove(req.ProductID, i.clock.Now())
	if err := i.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
