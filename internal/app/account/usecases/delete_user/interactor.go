package delete_user

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request identifies the account to delete and the admin deleting it.
type Request struct {
	UserID  string
	ActorID string
}

// Interactor handles the delete user use case. Orders placed by the user are kept.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new delete user interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute removes the account.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.UserID == req.ActorID {
		return domain.ErrCannotDeleteSelf
	}

	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		user, err := tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		defer user.ClearEvents()

		now := i.clock.Now()
		user.MarkDeleted(req.ActorID, now)
		if err := tx.Users().Delete(ctx, user.ID()); err != nil {
			return err
		}
		return outbox.Append(ctx, tx.Outbox(), user.DomainEvents(), now)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
