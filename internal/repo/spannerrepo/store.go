// Package spannerrepo implements contracts.Store on Cloud Spanner.
//
// Inside ReadWrite, repositories read through the read-write transaction and add their
// mutations to a committer.CommitPlan that is buffered when the callback returns nil.
// Reads never observe mutations buffered earlier in the same callback.
package spannerrepo

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// reader is the read surface shared by read-only and read-write transactions.
type reader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// Store implements contracts.Store.
type Store struct {
	client    *spanner.Client
	committer *committer.Committer
}

var jsonNumbers sync.Once

// NewStore creates a Store on top of an open client. The caller owns the client.
// JSON columns decode numbers as json.Number so payloads read back digit for digit.
func NewStore(client *spanner.Client) *Store {
	jsonNumbers.Do(func() { spanner.UseNumberWithJSONDecoderEncoder(true) })
	return &Store{
		client:    client,
		committer: committer.NewCommitter(client),
	}
}

// ReadWrite runs fn in a read-write transaction. Spanner may retry fn on abort.
func (s *Store) ReadWrite(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	return s.committer.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		return fn(ctx, &tx{rd: txn, plan: plan})
	})
}

// Read runs fn in a read-only snapshot transaction.
func (s *Store) Read(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	ro := s.client.ReadOnlyTransaction()
	defer ro.Close()

	return fn(ctx, &tx{rd: ro})
}

// Ping runs a trivial query to check the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()

	if _, err := iter.Next(); err != nil {
		return fmt.Errorf("spanner ping: %w", err)
	}
	return nil
}

type tx struct {
	rd   reader
	plan *committer.CommitPlan
}

func (t *tx) Products() contracts.ProductRepository { return newProductRepo(t) }
func (t *tx) Orders() contracts.OrderRepository     { return newOrderRepo(t) }
func (t *tx) Users() contracts.UserRepository       { return newUserRepo(t) }
func (t *tx) Outbox() contracts.OutboxRepository    { return newOutboxRepo(t) }

// write adds mutations to the plan. A nil plan means the transaction is read-only.
func (t *tx) write(muts ...*spanner.Mutation) error {
	if t.plan == nil {
		return contracts.ErrReadOnly
	}
	t.plan.AddMultiple(muts)
	return nil
}

// queryRows runs stmt and decodes every row with decode.
func queryRows[T any](ctx context.Context, rd reader, stmt spanner.Statement, decode func(*spanner.Row) (T, error)) ([]T, error) {
	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	out := make([]T, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		item, err := decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
