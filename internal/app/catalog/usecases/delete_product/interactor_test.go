package delete_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	clk := testutil.NewMockClock()
	seeded := testutil.SeedProduct(t, store, testutil.NewProductBuilder(), clk.Now())
	interactor := NewInteractor(store, clk)

	require.NoError(t, interactor.Execute(ctx, &Request{ProductID: seeded.ID()}))

	err := store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		_, err := tx.Products().GetByID(ctx, seeded.ID())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, []string{"product.deleted"}, testutil.OutboxEventTypes(t, store))

	err = interactor.Execute(ctx, &Request{ProductID: seeded.ID()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
