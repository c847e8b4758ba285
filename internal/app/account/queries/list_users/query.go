package list_users

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Query handles the list users query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new list users query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute lists all accounts newest first.
func (q *Query) Execute(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		users, err = tx.Users().List(ctx)
		return err
	})
	return users, err
}
