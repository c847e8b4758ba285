package add_item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/set_quantity"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestCartOperations(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	clk := testutil.NewMockClock()
	carts := memrepo.NewCartStore(0, clk)

	mug := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithName("Mug").WithPrices(300, 1000), clk.Now())
	tea := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithName("Tea").WithPrices(100, 450), clk.Now())
	hidden := testutil.SeedProduct(t, store, testutil.NewProductBuilder().Inactive(), clk.Now())

	add := NewInteractor(store, carts, clk)
	setQty := set_quantity.NewInteractor(carts, clk)
	remove := remove_item.NewInteractor(carts, clk)

	cart, err := add.Execute(ctx, &Request{UserID: "u1", ProductID: mug.ID(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "20.00", cart.Total().String())
	assert.Equal(t, "Mug", cart.Items()[0].Product.Name)

	cart, err = add.Execute(ctx, &Request{UserID: "u1", ProductID: tea.ID(), Quantity: 1})
	require.NoError(t, err)
	cart, err = add.Execute(ctx, &Request{UserID: "u1", ProductID: mug.ID(), Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items(), 2)
	assert.Equal(t, "34.50", cart.Total().String())

	cart, err = setQty.Execute(ctx, &set_quantity.Request{UserID: "u1", ProductID: tea.ID(), Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "48.00", cart.Total().String())

	cart, err = setQty.Execute(ctx, &set_quantity.Request{UserID: "u1", ProductID: "unknown", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "48.00", cart.Total().String())

	cart, err = setQty.Execute(ctx, &set_quantity.Request{UserID: "u1", ProductID: mug.ID(), Quantity: 0})
	require.NoError(t, err)
	assert.Len(t, cart.Items(), 1)
	assert.Equal(t, "18.00", cart.Total().String())

	cart, err = remove.Execute(ctx, &remove_item.Request{UserID: "u1", ProductID: tea.ID()})
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())

	t.Run("inactive product", func(t *testing.T) {
		_, err := add.Execute(ctx, &Request{UserID: "u1", ProductID: hidden.ID(), Quantity: 1})
		assert.ErrorIs(t, err, catalog.ErrProductNotActive)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := add.Execute(ctx, &Request{UserID: "u1", ProductID: "nope", Quantity: 1})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("quantity below one", func(t *testing.T) {
		_, err := add.Execute(ctx, &Request{UserID: "u1", ProductID: mug.ID(), Quantity: 0})
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("carts are per user and clearable", func(t *testing.T) {
		_, err := add.Execute(ctx, &Request{UserID: "u2", ProductID: mug.ID(), Quantity: 1})
		require.NoError(t, err)

		own, err := get_cart.NewQuery(carts).Execute(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, int64(1), own.Count())

		require.NoError(t, clear_cart.NewInteractor(carts).Execute(ctx, "u2"))
		own, err = get_cart.NewQuery(carts).Execute(ctx, "u2")
		require.NoError(t, err)
		assert.True(t, own.IsEmpty())
	})
}
