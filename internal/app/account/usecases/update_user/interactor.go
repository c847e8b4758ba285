package update_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request is a partial admin update of any account.
type Request struct {
	UserID string
	Name   *string
	Email  *string
	Role   *domain.Role
}

// Interactor handles the admin update user use case.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new update user interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute applies the update.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	var updated *domain.User
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		user, err := tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		defer user.ClearEvents()

		now := i.clock.Now()
		profile := domain.Profile{Name: req.Name, Email: req.Email, Role: req.Role}
		if err := user.UpdateProfile(profile, now); err != nil {
			return err
		}
		if user.Changes().Dirty(domain.FieldEmail) {
			other, err := tx.Users().GetByEmail(ctx, user.Email())
			if err == nil && other.ID() != user.ID() {
				return domain.ErrEmailTaken
			}
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
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
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}
