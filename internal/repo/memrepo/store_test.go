package memrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func newProduct(t *testing.T, id string, active bool, now time.Time) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(id, catalog.NewProductInput{
		Name:          "Product " + id,
		Description:   "Description",
		PurchasePrice: money.FromInt(5),
		SalePrice:     money.FromInt(10),
		Stock:         3,
		Active:        active,
	}, now)
	require.NoError(t, err)
	return p
}

func TestStore_ReadWriteIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now().UTC()
	boom := errors.New("boom")

	err := store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		require.NoError(t, tx.Products().Insert(ctx, newProduct(t, "p1", true, now)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		_, err := tx.Products().GetByID(ctx, "p1")
		return err
	})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestStore_ReadIsReadOnly(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return tx.Products().Insert(ctx, newProduct(t, "p1", true, time.Now()))
	})
	assert.ErrorIs(t, err, contracts.ErrReadOnly)
}

func TestProductRepo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		repo := tx.Products()
		require.NoError(t, repo.Insert(ctx, newProduct(t, "old", true, base)))
		require.NoError(t, repo.Insert(ctx, newProduct(t, "hidden", false, base.Add(time.Minute))))
		return repo.Insert(ctx, newProduct(t, "new", true, base.Add(2*time.Minute)))
	}))

	t.Run("list newest first with active filter", func(t *testing.T) {
		_ = store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
			all, err := tx.Products().List(ctx, contracts.ProductFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "new", all[0].ID())
			assert.Equal(t, "old", all[2].ID())

			active, err := tx.Products().List(ctx, contracts.ProductFilter{ActiveOnly: true})
			require.NoError(t, err)
			assert.Len(t, active, 2)
			return nil
		})
	})

	t.Run("update bumps version", func(t *testing.T) {
		require.NoError(t, store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
			p, err := tx.Products().GetByID(ctx, "old")
			require.NoError(t, err)
			assert.Equal(t, int64(1), p.Version())
			require.NoError(t, p.AdjustStock(-1, false, "test", base))
			return tx.Products().Update(ctx, p)
		}))

		_ = store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
			p, err := tx.Products().GetByID(ctx, "old")
			require.NoError(t, err)
			assert.Equal(t, int64(2), p.Version())
			assert.Equal(t, int64(2), p.Stock())
			return nil
		})
	})

	t.Run("delete missing", func(t *testing.T) {
		err := store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
			return tx.Products().Delete(ctx, "missing")
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now().UTC()

	first, err := account.NewUser("u1", "jane@example.com", "Jane", account.RoleUser, "hash", now)
	require.NoError(t, err)
	second, err := account.NewUser("u2", "JANE@example.com", "Other Jane", account.RoleUser, "hash", now)
	require.NoError(t, err)

	require.NoError(t, store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return tx.Users().Insert(ctx, first)
	}))
	err = store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return tx.Users().Insert(ctx, second)
	})
	assert.ErrorIs(t, err, account.ErrEmailTaken)

	_ = store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		u, err := tx.Users().GetByEmail(ctx, " Jane@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID())
		return nil
	})
}

func TestOutboxRepo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now().UTC()

	require.NoError(t, store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		for _, id := range []string{"e1", "e2", "e3"} {
			require.NoError(t, tx.Outbox().Insert(ctx, &contracts.OutboxEvent{
				EventID:     id,
				EventType:   "product.created",
				AggregateID: "p1",
				Payload:     `{}`,
				Status:      contracts.OutboxStatusPending,
				CreatedAt:   now,
			}))
		}
		return nil
	}))

	require.NoError(t, store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		require.NoError(t, tx.Outbox().MarkCompleted(ctx, "e1", now))
		require.NoError(t, tx.Outbox().MarkFailed(ctx, "e2", "broker down", false, now))
		return tx.Outbox().MarkFailed(ctx, "e3", "broker down", true, now)
	}))

	_ = store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		pending, err := tx.Outbox().ListPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "e2", pending[0].EventID)
		assert.Equal(t, int64(1), pending[0].RetryCount)

		failed, err := tx.Outbox().List(ctx, contracts.OutboxFilter{Status: contracts.OutboxStatusFailed})
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.NotNil(t, failed[0].ProcessedAt)

		limited, err := tx.Outbox().List(ctx, contracts.OutboxFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, limited, 2)
		assert.Equal(t, "e3", limited[0].EventID)
		return nil
	})
}

func TestCartStore_TTL(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := NewCartStore(time.Hour, clk)

	c := cart.New("u1")
	require.NoError(t, c.Add(cart.ProductSnapshot{ID: "p1", SalePrice: money.FromInt(3), PurchasePrice: money.FromInt(1)}, 2, clk.Now()))
	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "6.00", loaded.Total().String())

	clk.Advance(2 * time.Hour)
	loaded, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
