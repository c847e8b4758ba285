package contracts

import (
	"context"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// CartStore keeps one cart per user outside the transactional store.
type CartStore interface {
	// Load returns the user's cart, or an empty cart when none is stored.
	Load(ctx context.Context, userID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, userID string) error
}
