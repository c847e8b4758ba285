package create_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request contains the data an admin supplies for a new account. An empty Password
// generates a random one; an empty Role means RoleUser.
type Request struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

// Interactor handles admin account creation.
type Interactor struct {
	store  contracts.Store
	hasher *credentials.Hasher
	clock  clock.Clock
}

// NewInteractor creates a new create user interactor.
func NewInteractor(store contracts.Store, hasher *credentials.Hasher, clock clock.Clock) *Interactor {
	return &Interactor{
		store:  store,
		hasher: hasher,
		clock:  clock,
	}
}

// Execute creates the account.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	password := req.Password
	if password == "" {
		generated, err := credentials.RandomPassword()
		if err != nil {
			return nil, err
		}
		password = generated
	} else if err := credentials.Validate("password", password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := i.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	user, err := domain.NewUser(uuid.New().String(), req.Email, req.Name, role, hash, now)
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
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
