package get_user

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Request identifies the user.
type Request struct {
	UserID string
}

// Query handles the get user query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new get user query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute retrieves a user by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	var user *domain.User
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, req.UserID)
		return err
	})
	return user, err
}
