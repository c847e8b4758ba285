package memrepo

import (
	"context"
	"sync"
	"time"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

type cartEntry struct {
	snap    cart.Snapshot
	expires time.Time
}

// CartStore implements contracts.CartStore in memory with the same TTL semantics as the
// Redis store: every save pushes the expiry forward.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]cartEntry
	ttl   time.Duration
	clock clock.Clock
}

// NewCartStore creates a CartStore. A zero ttl keeps carts forever.
func NewCartStore(ttl time.Duration, clk clock.Clock) *CartStore {
	return &CartStore{
		carts: make(map[string]cartEntry),
		ttl:   ttl,
		clock: clk,
	}
}

func (s *CartStore) Load(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[userID]
	if !ok {
		return cart.New(userID), nil
	}
	if s.ttl > 0 && !s.clock.Now().Before(entry.expires) {
		delete(s.carts, userID)
		return cart.New(userID), nil
	}
	return cart.Reconstruct(entry.snap), nil
}

func (s *CartStore) Save(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[c.UserID()] = cartEntry{
		snap:    c.Snapshot(),
		expires: s.clock.Now().Add(s.ttl),
	}
	return nil
}

func (s *CartStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
