package clear_cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

var errUnavailable = errors.New("cart store unavailable")

type failingDelete struct {
	*memrepo.CartStore
}

func (failingDelete) Delete(context.Context, string) error {
	return errUnavailable
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()

	t.Run("empties only the caller's cart", func(t *testing.T) {
		clk := testutil.NewMockClock()
		carts := memrepo.NewCartStore(0, clk)
		testutil.SeedCart(t, carts, "u1", clk.Now(), domain.Item{Product: testutil.CartProduct("mug", 1000), Quantity: 2})
		testutil.SeedCart(t, carts, "u2", clk.Now(), domain.Item{Product: testutil.CartProduct("tea", 450), Quantity: 1})

		require.NoError(t, NewInteractor(carts).Execute(ctx, "u1"))

		assert.True(t, testutil.LoadCart(t, carts, "u1").IsEmpty())
		assert.Equal(t, int64(1), testutil.LoadCart(t, carts, "u2").Count())
	})

	t.Run("clearing an absent cart succeeds", func(t *testing.T) {
		carts := memrepo.NewCartStore(0, testutil.NewMockClock())
		assert.NoError(t, NewInteractor(carts).Execute(ctx, "nobody"))
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		carts := memrepo.NewCartStore(0, testutil.NewMockClock())
		err := NewInteractor(failingDelete{carts}).Execute(ctx, "u1")
		assert.ErrorIs(t, err, errUnavailable)
		assert.ErrorContains(t, err, "failed to clear cart")
	})
}
