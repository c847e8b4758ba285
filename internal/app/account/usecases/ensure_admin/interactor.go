package ensure_admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request describes the bootstrap admin account.
type Request struct {
	Email    string
	Password string
	Name     string
}

// Interactor makes sure an admin account exists at startup.
type Interactor struct {
	store  contracts.Store
	hasher *credentials.Hasher
	clock  clock.Clock
	logger *slog.Logger
}

// NewInteractor creates a new ensure admin interactor.
func NewInteractor(store contracts.Store, hasher *credentials.Hasher, clock clock.Clock, logger *slog.Logger) *Interactor {
	return &Interactor{
		store:  store,
		hasher: hasher,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates the admin if the email is unknown and promotes an existing account
// that is not yet an admin. The password of an existing account is never touched.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.Name == "" {
		req.Name = "Administrator"
	}

	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		now := i.clock.Now()

		existing, err := tx.Users().GetByEmail(ctx, req.Email)
		if err == nil {
			defer existing.ClearEvents()
			if existing.IsAdmin() {
				return nil
			}
			role := domain.RoleAdmin
			if err := existing.UpdateProfile(domain.Profile{Role: &role}, now); err != nil {
				return err
			}
			if err := tx.Users().Update(ctx, existing); err != nil {
				return err
			}
			i.logger.Info("promoted bootstrap admin", "user_id", existing.ID())
			return outbox.Append(ctx, tx.Outbox(), existing.DomainEvents(), now)
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		if err := credentials.Validate("password", req.Password); err != nil {
			return err
		}
		hash, err := i.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		admin, err := domain.NewUser(uuid.New().String(), req.Email, req.Name, domain.RoleAdmin, hash, now)
		if err != nil {
			return err
		}
		defer admin.ClearEvents()

		if err := tx.Users().Insert(ctx, admin); err != nil {
			return err
		}
		i.logger.Info("created bootstrap admin", "user_id", admin.ID(), "email", admin.Email())
		return outbox.Append(ctx, tx.Outbox(), admin.DomainEvents(), now)
	})
	if err != nil {
		return fmt.Errorf("failed to ensure admin: %w", err)
	}
	return nil
}
