package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// CartProduct returns a product snapshot priced at saleCents with a purchase price of half that.
func CartProduct(id string, saleCents int64) cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ID:            id,
		Name:          "Product " + id,
		PurchasePrice: money.MustNew(saleCents/2, 100),
		SalePrice:     money.MustNew(saleCents, 100),
		Stock:         100,
	}
}

// SeedCart stores a cart for userID holding the given entries.
func SeedCart(t *testing.T, carts contracts.CartStore, userID string, now time.Time, items ...cart.Item) *cart.Cart {
	t.Helper()
	c := cart.New(userID)
	for _, it := range items {
		require.NoError(t, c.Add(it.Product, it.Quantity, now))
	}
	require.NoError(t, carts.Save(context.Background(), c))
	return c
}

// LoadCart reads the stored cart for userID.
func LoadCart(t *testing.T, carts contracts.CartStore, userID string) *cart.Cart {
	t.Helper()
	c, err := carts.Load(context.Background(), userID)
	require.NoError(t, err)
	return c
}
