package reset_password

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request names the account to reset.
type Request struct {
	Email string
}

// Interactor records password reset requests. Delivery of the reset mail is done by an
// outbox consumer.
type Interactor struct {
	store  contracts.Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewInteractor creates a new reset password interactor.
func NewInteractor(store contracts.Store, clock clock.Clock, logger *slog.Logger) *Interactor {
	return &Interactor{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute succeeds whether or not the email is known, so callers cannot probe for
// accounts. Only infrastructure failures are returned.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		user, err := tx.Users().GetByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		defer user.ClearEvents()

		now := i.clock.Now()
		user.RequestPasswordReset(now)
		return outbox.Append(ctx, tx.Outbox(), user.DomainEvents(), now)
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		i.logger.Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to request password reset: %w", err)
	}
	return nil
}
