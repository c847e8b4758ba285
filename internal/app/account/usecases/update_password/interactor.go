package update_password

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Request changes the caller's password.
type Request struct {
	UserID      string
	OldPassword string
	NewPassword string
}

// Interactor handles the update password use case.
type Interactor struct {
	store  contracts.Store
	hasher *credentials.Hasher
	clock  clock.Clock
}

// NewInteractor creates a new update password interactor.
func NewInteractor(store contracts.Store, hasher *credentials.Hasher, clock clock.Clock) *Interactor {
	return &Interactor{
		store:  store,
		hasher: hasher,
		clock:  clock,
	}
}

// Execute verifies the old password and stores the hash of the new one. A wrong old
// password is a field error on oldPassword; the caller stays signed in.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if err := credentials.Validate("newPassword", req.NewPassword); err != nil {
		return err
	}
	hash, err := i.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	err = i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		user, err := tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		defer user.ClearEvents()

		if !i.hasher.Matches(user.PasswordHash(), req.OldPassword) {
			return validation.Single("oldPassword", "is incorrect")
		}

		now := i.clock.Now()
		user.SetPasswordHash(hash, now)
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		return outbox.Append(ctx, tx.Outbox(), user.DomainEvents(), now)
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
