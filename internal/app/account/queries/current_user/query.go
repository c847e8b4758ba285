package current_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Query resolves a session token to the stored user. The role is always read from the
// store, never from the token.
type Query struct {
	store    contracts.Store
	sessions *session.Manager
}

// NewQuery creates a new current user query.
func NewQuery(store contracts.Store, sessions *session.Manager) *Query {
	return &Query{
		store:    store,
		sessions: sessions,
	}
}

// Execute returns ErrUnauthenticated for missing, malformed or expired tokens and for
// tokens whose user no longer exists.
func (q *Query) Execute(ctx context.Context, token string) (*domain.User, error) {
	userID, err := q.sessions.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	var user *domain.User
	err = q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, userID)
		return err
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
