package set_quantity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

type failingSave struct {
	*memrepo.CartStore
}

func (failingSave) Save(context.Context, *domain.Cart) error {
	return errors.New("cart store unavailable")
}

func TestSetQuantity(t *testing.T) {
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

	t.Run("overwrites the quantity and refreshes the timestamp", func(t *testing.T) {
		carts, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "tea", Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, "38.00", cart.Total().String())
		assert.Equal(t, testutil.Epoch.Add(time.Minute), cart.UpdatedAt())

		stored := testutil.LoadCart(t, carts, "u1")
		assert.Equal(t, int64(6), stored.Count())
	})

	t.Run("zero removes the entry", func(t *testing.T) {
		carts, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "mug", Quantity: 0})
		require.NoError(t, err)
		require.Len(t, cart.Items(), 1)
		assert.Equal(t, "tea", cart.Items()[0].Product.ID)
		assert.Len(t, testutil.LoadCart(t, carts, "u1").Items(), 1)
	})

	t.Run("unknown product leaves the cart unchanged", func(t *testing.T) {
		_, interactor := setup(t)

		cart, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "nope", Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(3), cart.Count())
		assert.Equal(t, testutil.Epoch, cart.UpdatedAt())
	})

	t.Run("quantity above the limit is rejected and not stored", func(t *testing.T) {
		carts, interactor := setup(t)

		_, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "mug", Quantity: validation.MaxQuantity + 1})
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Equal(t, int64(3), testutil.LoadCart(t, carts, "u1").Count())
	})

	t.Run("save failure is returned", func(t *testing.T) {
		carts, _ := setup(t)
		interactor := NewInteractor(failingSave{carts}, testutil.NewMockClock())

		_, err := interactor.Execute(ctx, &Request{UserID: "u1", ProductID: "mug", Quantity: 5})
		assert.ErrorContains(t, err, "failed to save cart")
		assert.Equal(t, int64(3), testutil.LoadCart(t, carts, "u1").Count())
	})
}
