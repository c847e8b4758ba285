// Package memrepo is an in-process implementation of contracts.Store used by tests and
// local development. A ReadWrite call works on a copy of the state that replaces the
// live state only when the callback succeeds.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
)

type productRow struct {
	snap catalog.Snapshot
	seq  int64
}

type orderRow struct {
	snap ordering.Snapshot
	seq  int64
}

type userRow struct {
	snap account.Snapshot
	seq  int64
}

type outboxRow struct {
	event contracts.OutboxEvent
	seq   int64
}

type state struct {
	products map[string]productRow
	orders   map[string]orderRow
	users    map[string]userRow
	outbox   map[string]outboxRow
	seq      int64
}

func newState() *state {
	return &state{
		products: make(map[string]productRow),
		orders:   make(map[string]orderRow),
		users:    make(map[string]userRow),
		outbox:   make(map[string]outboxRow),
	}
}

// clone copies the maps. Rows are values that are replaced, never mutated, so sharing
// them between copies is safe.
func (s *state) clone() *state {
	c := &state{
		products: make(map[string]productRow, len(s.products)),
		orders:   make(map[string]orderRow, len(s.orders)),
		users:    make(map[string]userRow, len(s.users)),
		outbox:   make(map[string]outboxRow, len(s.outbox)),
		seq:      s.seq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	return c
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store implements contracts.Store in memory.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// ReadWrite runs fn under the store-wide write lock.
func (s *Store) ReadWrite(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &tx{state: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

// Read runs fn against a consistent view. Writes fail with contracts.ErrReadOnly.
func (s *Store) Read(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &tx{state: s.state, readOnly: true})
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type tx struct {
	state    *state
	readOnly bool
}

func (t *tx) Products() contracts.ProductRepository { return &productRepo{tx: t} }
func (t *tx) Orders() contracts.OrderRepository     { return &orderRepo{tx: t} }
func (t *tx) Users() contracts.UserRepository       { return &userRepo{tx: t} }
func (t *tx) Outbox() contracts.OutboxRepository    { return &outboxRepo{tx: t} }

func (t *tx) writable() error {
	if t.readOnly {
		return contracts.ErrReadOnly
	}
	return nil
}

// newestFirst orders by creation time descending, then by insertion order descending.
func newestFirst(aCreated, bCreated time.Time, aSeq, bSeq int64) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return aSeq > bSeq
}

func sortRows[T any](rows []T, less func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
