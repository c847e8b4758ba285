package list_orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/cancel_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	clk := testutil.NewMockClock()
	p := testutil.SeedProduct(t, store, testutil.NewProductBuilder(), clk.Now())
	place := place_order.NewInteractor(store, clk)

	var ids []string
	for _, user := range []string{"alice", "bob", "alice"} {
		clk.Advance(time.Minute)
		o, err := place.Execute(ctx, &place_order.Request{
			Buyer: domain.Buyer{UserID: user},
			Items: []place_order.Item{{ProductID: p.ID(), Quantity: 1}},
		})
		require.NoError(t, err)
		ids = append(ids, o.ID())
	}
	_, err := cancel_order.NewInteractor(store, clk, testutil.DiscardLogger()).Execute(ctx, &cancel_order.Request{OrderID: ids[0]})
	require.NoError(t, err)

	query := NewQuery(store)

	t.Run("all orders newest first", func(t *testing.T) {
		orders, err := query.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, ids[2], orders[0].ID())
		assert.Equal(t, ids[0], orders[2].ID())
	})

	t.Run("filtered by user", func(t *testing.T) {
		orders, err := query.Execute(ctx, &Request{UserID: "alice"})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		orders, err := query.Execute(ctx, &Request{Status: domain.StatusCancelled})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, ids[0], orders[0].ID())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := query.Execute(ctx, &Request{Status: "shipped"})
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})
}
