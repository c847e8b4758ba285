package clear_cart

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Interactor handles the clear cart use case.
type Interactor struct {
	carts contracts.CartStore
}

// NewInteractor creates a new clear cart interactor.
func NewInteractor(carts contracts.CartStore) *Interactor {
	return &Interactor{carts: carts}
}

// Execute drops the user's cart.
func (i *Interactor) Execute(ctx context.Context, userID string) error {
	if err := i.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
