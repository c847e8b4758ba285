package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request contains the sign-up form.
type Request struct {
	Email    string
	Password string
	Name     string
}

// Response is the new account and its first session.
type Response struct {
	User  *domain.User
	Token session.Token
}

// Interactor handles self-service sign-up. New accounts always get the user role.
type Interactor struct {
	store    contracts.Store
	hasher   *credentials.Hasher
	sessions *session.Manager
	clock    clock.Clock
}

// NewInteractor creates a new register interactor.
func NewInteractor(store contracts.Store, hasher *credentials.Hasher, sessions *session.Manager, clock clock.Clock) *Interactor {
	return &Interactor{
		store:    store,
		hasher:   hasher,
		sessions: sessions,
		clock:    clock,
	}
}

// Execute creates the account and signs the caller in.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := credentials.Validate("password", req.Password); err != nil {
		return nil, err
	}
	hash, err := i.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	user, err := domain.NewUser(uuid.New().String(), req.Email, req.Name, domain.RoleUser, hash, now)
	if err != nil {
		return nil, err
	}
	defer user.ClearEvents()

	err = i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		_, err := tx.Users().GetByEmail(ctx, user.Email())
		switch {
		case err == nil:
			return domain.ErrEmailTaken
		case !errors.Is(err, domain.ErrUserNotFound):
			return err
		}

		if err := tx.Users().Insert(ctx, user); err != nil {
			return err
		}
		return outbox.Append(ctx, tx.Outbox(), user.DomainEvents(), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	token, err := i.sessions.Issue(user.ID())
	if err != nil {
		return nil, err
	}
	return &Response{User: user, Token: token}, nil
}
