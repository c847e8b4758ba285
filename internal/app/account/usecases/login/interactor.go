package login

import (
	"context"
	"errors"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Request carries the submitted credentials.
type Request struct {
	Email    string
	Password string
}

// Response is the authenticated user and a fresh session.
type Response struct {
	User  *domain.User
	Token session.Token
}

// Interactor authenticates users. It never changes state.
type Interactor struct {
	store    contracts.Store
	hasher   *credentials.Hasher
	sessions *session.Manager
}

// NewInteractor creates a new login interactor.
func NewInteractor(store contracts.Store, hasher *credentials.Hasher, sessions *session.Manager) *Interactor {
	return &Interactor{
		store:    store,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Execute checks the credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	var user *domain.User
	err := i.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(ctx, req.Email)
		return err
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !i.hasher.Matches(user.PasswordHash(), req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := i.sessions.Issue(user.ID())
	if err != nil {
		return nil, err
	}
	return &Response{User: user, Token: token}, nil
}
