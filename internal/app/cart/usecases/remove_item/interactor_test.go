package remove_item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memrepo.CartStore, *Interactor) {
		clk := testutil.NewMockClock()
		carts := memrepo.NewCartStore(0, clk)
		testutil.SeedCart(t, carts, "u1", clk.Now(),
			domain.Item{Product: testutil.CartProduct("mug", 1000), Quantity: 2},
			domain.Item{Product: testutil.CartProduct("tea", 450), Quantity: 1},
		)
		clk.Advance(time.Minute)
		return carts, NewInteractor(carts, clk)
	}

	t.Run("drops the whole entry", func(t *testing.T) {
		carts, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "mug"})
		require.NoError(t, err)
		require.Len(t, cart.Items(), 1)
		assert.Equal(t, "4.50", cart.Total().String())
		assert.Equal(t, testutil.Epoch.Add(time.Minute), cart.UpdatedAt())

		stored := testutil.LoadCart(t, carts, "u1")
		require.Len(t, stored.Items(), 1)
		assert.Equal(t, "tea", stored.Items()[0].Product.ID)
	})

	t.Run("missing entry is a no-op", func(t *testing.T) {
		carts, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "nope"})
		require.NoError(t, err)
		assert.Len(t, cart.Items(), 2)
		assert.Equal(t, testutil.Epoch, cart.UpdatedAt())
		assert.Equal(t, int64(3), testutil.LoadCart(t, carts, "u1").Count())
	})

	t.Run("other users are untouched", func(t *testing.T) {
		carts, interactor := setup(t)
		testutil.SeedCart(t, carts, "u2", testutil.Epoch, domain.Item{Product: testutil.CartProduct("mug", 1000), Quantity: 1})

		_, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "mug"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), testutil.LoadCart(t, carts, "u2").Count())
	})

	t.Run("empty cart stays empty", func(t *testing.T) {
		_, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "nobody", ProductID: "mug"})
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}
