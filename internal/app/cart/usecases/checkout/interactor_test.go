package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/update_product"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

// interleavedCarts runs between before the second Load, the one checkout makes after
// placing the order.
type interleavedCarts struct {
	*memrepo.CartStore
	loads   int
	between func()
}

func (c *interleavedCarts) Load(ctx context.Context, userID string) (*cartdomain.Cart, error) {
	c.loads++
	if c.loads == 2 && c.between != nil {
		c.between()
	}
	return c.CartStore.Load(ctx, userID)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	buyer := ordering.Buyer{UserID: "u1", Email: "u1@example.com"}

	setup := func(t *testing.T) (*memrepo.Store, *memrepo.CartStore, *Interactor, *add_item.Interactor) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		carts := memrepo.NewCartStore(0, clk)
		checkout := NewInteractor(carts, place_order.NewInteractor(store, clk), testutil.DiscardLogger())
		return store, carts, checkout, add_item.NewInteractor(store, carts, clk)
	}

	t.Run("places pending order and empties cart", func(t *testing.T) {
		store, carts, checkout, add := setup(t)
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(5), testutil.Epoch)
		_, err := add.Execute(ctx, &add_item.Request{UserID: "u1", ProductID: p.ID(), Quantity: 2})
		require.NoError(t, err)

		order, err := checkout.Execute(ctx, &Request{Buyer: buyer, Shipping: ordering.ShippingInfo{City: "Oslo"}})
		require.NoError(t, err)
		assert.Equal(t, ordering.StatusPending, order.Status())
		assert.Equal(t, "200.00", order.Total().String())
		assert.Equal(t, int64(5), testutil.GetProduct(t, store, p.ID()).Stock())

		cart, err := carts.Load(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("empty cart", func(t *testing.T) {
		_, _, checkout, _ := setup(t)
		_, err := checkout.Execute(ctx, &Request{Buyer: buyer})
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("product deactivated after adding keeps the cart", func(t *testing.T) {
		store, carts, checkout, add := setup(t)
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder(), testutil.Epoch)
		_, err := add.Execute(ctx, &add_item.Request{UserID: "u1", ProductID: p.ID(), Quantity: 1})
		require.NoError(t, err)

		inactive := false
		_, err = update_product.NewInteractor(store, testutil.NewMockClock()).Execute(ctx, &update_product.Request{ProductID: p.ID(), Active: &inactive})
		require.NoError(t, err)

		_, err = checkout.Execute(ctx, &Request{Buyer: buyer})
		assert.ErrorIs(t, err, catalog.ErrProductNotActive)

		cart, err := carts.Load(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())
	})
	t.Run("entries added while the order is placed stay in the cart", func(t *testing.T) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		carts := &interleavedCarts{CartStore: memrepo.NewCartStore(0, clk)}
		add := add_item.NewInteractor(store, carts.CartStore, clk)
		checkout := NewInteractor(carts, place_order.NewInteractor(store, clk), testutil.DiscardLogger())

		a := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(10), testutil.Epoch)
		b := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(10), testutil.Epoch)
		_, err := add.Execute(ctx, &add_item.Request{UserID: "u1", ProductID: a.ID(), Quantity: 2})
		require.NoError(t, err)

		carts.between = func() {
			_, err := add.Execute(ctx, &add_item.Request{UserID: "u1", ProductID: a.ID(), Quantity: 1})
			require.NoError(t, err)
			_, err = add.Execute(ctx, &add_item.Request{UserID: "u1", ProductID: b.ID(), Quantity: 4})
			require.NoError(t, err)
		}

		order, err := checkout.Execute(ctx, &Request{Buyer: buyer})
		require.NoError(t, err)
		require.Len(t, order.Lines(), 1)
		assert.Equal(t, int64(2), order.Lines()[0].Quantity)

		cart, err := carts.CartStore.Load(ctx, "u1")
		require.NoError(t, err)
		remaining := map[string]int64{}
		for _, it := range cart.Items() {
			remaining[it.Product.ID] = it.Quantity
		}
		assert.Equal(t, map[string]int64{a.ID(): 1, b.ID(): 4}, remaining)
	})
}
