package cancel_order

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

// Request identifies the order to cancel.
type Request struct {
	OrderID string
}

// Interactor handles the cancel order use case.
type Interactor struct {
	store  contracts.Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewInteractor creates a new cancel order interactor.
func NewInteractor(store contracts.Store, clock clock.Clock, logger *slog.Logger) *Interactor {
	return &Interactor{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute cancels an order. A proceeded order has its stock restored in the same
// transaction.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	var cancelled *domain.Order
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		order, err := tx.Orders().GetByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		defer order.ClearEvents()

		now := i.clock.Now()
		movements, err := order.Cancel(now)
		if err != nil {
			return err
		}

		stockEvents, err := inventory.Apply(ctx, tx.Products(), movements, inventory.Options{
			AllowOverdraw: true,
			Reason:        "order.cancelled",
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
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	i.logger.Info("order cancelled", "order_id", cancelled.ID())
	return cancelled, nil
}
