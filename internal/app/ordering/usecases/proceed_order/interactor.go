package proceed_order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/inventory"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request identifies the order to fulfil.
type Request struct {
	OrderID string
}

// Interactor handles the proceed order use case.
type Interactor struct {
	store         contracts.Store
	clock         clock.Clock
	logger        *slog.Logger
	allowOverdraw bool
}

// NewInteractor creates a new proceed order interactor. With allowOverdraw set, stock
// is decremented even when it goes negative.
func NewInteractor(store contracts.Store, clock clock.Clock, logger *slog.Logger, allowOverdraw bool) *Interactor {
	return &Interactor{
		store:         store,
		clock:         clock,
		logger:        logger,
		allowOverdraw: allowOverdraw,
	}
}

// Execute moves a pending order to proceeded and decrements stock, atomically.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	var proceeded *domain.Order
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		order, err := tx.Orders().GetByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		defer order.ClearEvents()

		now := i.clock.Now()
		movements, err := order.Proceed(now)
		if err != nil {
			return err
		}

		stockEvents, err := inventory.Apply(ctx, tx.Products(), movements, inventory.Options{
			AllowOverdraw: i.allowOverdraw,
			Reason:        "order.proceeded",
			OrderID:       order.ID(),
		}, now, i.logger)
		if err != nil {
			return err
		}

		if err := tx.Orders().Update(ctx, order); err != nil {
			return err
		}
		if err := outbox.Append(ctx, tx.Outbox(), append(order.DomainEvents(), stockEvents...), now); err != nil {
			return err
		}
		proceeded = order
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to proceed order: %w", err)
	}

	i.logger.Info("order proceeded", "order_id", proceeded.ID(), "total", proceeded.Total().String())
	return proceeded, nil
}
