package cancel_order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/proceed_order"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func placeOrder(t *testing.T, store *memrepo.Store, clk clock.Clock, items ...place_order.Item) *domain.Order {
	t.Helper()
	order, err := place_order.NewInteractor(store, clk).Execute(context.Background(), &place_order.Request{
		Buyer: domain.Buyer{UserID: "user-1"},
		Items: items,
	})
	require.NoError(t, err)
	return order
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("pending cancel leaves stock", func(t *testing.T) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(5), clk.Now())
		order := placeOrder(t, store, clk, place_order.Item{ProductID: p.ID(), Quantity: 2})

		cancelled, err := NewInteractor(store, clk, testutil.DiscardLogger()).Execute(ctx, &Request{OrderID: order.ID()})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status())
		assert.Equal(t, int64(5), testutil.GetProduct(t, store, p.ID()).Stock())
		assert.Equal(t, []string{"order.placed", "order.cancelled"}, testutil.OutboxEventTypes(t, store))
	})

	t.Run("proceeded cancel restocks every line", func(t *testing.T) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		logger := testutil.DiscardLogger()
		a := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(5), clk.Now())
		b := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(3), clk.Now())
		order := placeOrder(t, store, clk,
			place_order.Item{ProductID: a.ID(), Quantity: 2},
			place_order.Item{ProductID: b.ID(), Quantity: 3},
		)
		_, err := proceed_order.NewInteractor(store, clk, logger, false).Execute(ctx, &proceed_order.Request{OrderID: order.ID()})
		require.NoError(t, err)
		assert.Equal(t, int64(0), testutil.GetProduct(t, store, b.ID()).Stock())

		_, err = NewInteractor(store, clk, logger).Execute(ctx, &Request{OrderID: order.ID()})
		require.NoError(t, err)
		assert.Equal(t, int64(5), testutil.GetProduct(t, store, a.ID()).Stock())
		assert.Equal(t, int64(3), testutil.GetProduct(t, store, b.ID()).Stock())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		interactor := NewInteractor(store, clk, testutil.DiscardLogger())
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder(), clk.Now())
		order := placeOrder(t, store, clk, place_order.Item{ProductID: p.ID(), Quantity: 1})

		_, err := interactor.Execute(ctx, &Request{OrderID: order.ID()})
		require.NoError(t, err)
		_, err = interactor.Execute(ctx, &Request{OrderID: order.ID()})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("deleted product is skipped on restock", func(t *testing.T) {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		logger := testutil.DiscardLogger()
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(5), clk.Now())
		order := placeOrder(t, store, clk, place_order.Item{ProductID: p.ID(), Quantity: 2})
		_, err := proceed_order.NewInteractor(store, clk, logger, false).Execute(ctx, &proceed_order.Request{OrderID: order.ID()})
		require.NoError(t, err)
		require.NoError(t, delete_product.NewInteractor(store, clk).Execute(ctx, &delete_product.Request{ProductID: p.ID()}))

		cancelled, err := NewInteractor(store, clk, logger).Execute(ctx, &Request{OrderID: order.ID()})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status())
	})
}

// TestConcurrentProceedAndCancel races a proceed against a cancel on the same order.
// Whatever order they serialize in, net stock must match the final status.
func TestConcurrentProceedAndCancel(t *testing.T) {
	ctx := context.Background()
	logger := testutil.DiscardLogger()

	for i := 0; i < 20; i++ {
		store := memrepo.NewStore()
		clk := testutil.NewMockClock()
		p := testutil.SeedProduct(t, store, testutil.NewProductBuilder().WithStock(5), clk.Now())
		order := placeOrder(t, store, clk, place_order.Item{ProductID: p.ID(), Quantity: 2})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = proceed_order.NewInteractor(store, clk, logger, false).Execute(ctx, &proceed_order.Request{OrderID: order.ID()})
		}()
		go func() {
			defer wg.Done()
			_, _ = NewInteractor(store, clk, logger).Execute(ctx, &Request{OrderID: order.ID()})
		}()
		wg.Wait()

		final := testutil.GetOrder(t, store, order.ID())
		stock := testutil.GetProduct(t, store, p.ID()).Stock()
		switch final.Status() {
		case domain.StatusProceeded:
			assert.Equal(t, int64(3), stock)
		case domain.StatusCancelled:
			assert.Equal(t, int64(5), stock)
		default:
			t.Fatalf("unexpected status %s", final.Status())
		}
	}
}
