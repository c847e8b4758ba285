//go:build integration

package rediscart

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStore_RoundTrip(t *testing.T) {
	client := setupRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()
	userID := "cart-test-user"
	t.Cleanup(func() { _ = store.Delete(ctx, userID) })

	empty, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	c := cart.New(userID)
	require.NoError(t, c.Add(cart.ProductSnapshot{
		ID:            "p1",
		Name:          "Mug",
		PurchasePrice: money.MustNew(250, 100),
		SalePrice:     money.MustNew(799, 100),
		Stock:         3,
	}, 2, time.Now().UTC()))
	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, "15.98", loaded.Total().String())
	assert.Equal(t, int64(2), loaded.Count())

	ttl, err := client.TTL(ctx, key(userID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, userID))
	gone, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.True(t, gone.IsEmpty())
}
