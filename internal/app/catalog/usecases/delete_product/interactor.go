package delete_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request identifies the product to delete.
type Request struct {
	ProductID string
}

// Interactor handles the delete product use case. Deletion is hard and unconditional:
// orders keep their own line snapshots.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute removes the product.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		product, err := tx.Products().GetByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		defer product.ClearEvents()

		now := i.clock.Now()
		product.MarkDeleted(now)
		if err := tx.Products().Delete(ctx, product.ID()); err != nil {
			return err
		}
		return outbox.Append(ctx, tx.Outbox(), product.DomainEvents(), now)
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
