package update_profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request is a partial update of the caller's own profile.
type Request struct {
	UserID string
	Name   *string
	Email  *string
}

// Interactor handles the update profile use case.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new update profile interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute applies the update. A new email must not belong to another account.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	var updated *domain.User
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		user, err := tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		defer user.ClearEvents()

		now := i.clock.Now()
		if err := user.UpdateProfile(domain.Profile{Name: req.Name, Email: req.Email}, now); err != nil {
			return err
		}
		if user.Changes().Dirty(domain.FieldEmail) {
			if err := ensureEmailFree(ctx, tx.Users(), user); err != nil {
				return err
			}
		}

		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		if err := outbox.Append(ctx, tx.Outbox(), user.DomainEvents(), now); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

func ensureEmailFree(ctx context.Context, users contracts.UserRepository, user *domain.User) error {
	other, err := users.GetByEmail(ctx, user.Email())
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID() != user.ID() {
		return domain.ErrEmailTaken
	}
	return nil
}
