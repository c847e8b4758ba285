package set_quantity

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request overwrites the quantity of one entry. Zero or less removes it.
type Request struct {
	UserID    string
	ProductID string
	Quantity  int64
}

// Interactor handles the set quantity use case.
type Interactor struct {
	carts contracts.CartStore
	clock clock.Clock
}

// NewInteractor creates a new set quantity interactor.
func NewInteractor(carts contracts.CartStore, clock clock.Clock) *Interactor {
	return &Interactor{
		carts: carts,
		clock: clock,
	}
}

// Execute updates the cart. Products not in the cart are ignored.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	cart, err := i.carts.Load(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(req.ProductID, req.Quantity, i.clock.Now()); err != nil {
		return nil, err
	}
	if err := i.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
