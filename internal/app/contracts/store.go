// Package contracts defines the persistence and messaging ports used by the usecases.
package contracts

import (
	"context"
	"errors"
)

// ErrReadOnly is returned by write methods called inside Store.Read.
var ErrReadOnly = errors.New("write attempted in read-only transaction")

// Tx exposes the repositories bound to one transaction.
type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	Users() UserRepository
	Outbox() OutboxRepository
}

// Store runs units of work. ReadWrite is all-or-nothing: when fn returns an error nothing
// it wrote is kept. Implementations may retry fn on transient conflicts, so fn must not
// have side effects outside the transaction.
type Store interface {
	ReadWrite(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Read(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Ping(ctx context.Context) error
}
