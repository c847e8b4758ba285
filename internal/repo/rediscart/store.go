// Package rediscart keeps carts in Redis as JSON documents with a sliding TTL.
package rediscart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

const keyPrefix = "cart:"

// Store implements contracts.CartStore on Redis.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStore creates a Store. A zero ttl keeps carts until they are deleted.
func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Load returns the stored cart or an empty one.
func (s *Store) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	snap.UserID = userID
	return cart.Reconstruct(snap), nil
}

// Save overwrites the cart and refreshes its expiry.
func (s *Store) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, key(c.UserID()), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}
