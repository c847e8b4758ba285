package update_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Request contains the data to update a product. Nil fields are left unchanged.
type Request struct {
	ProductID     string
	Name          *string
	Description   *string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Stock         *int64
	Active        *bool
	Images        *[]string
}

// Interactor handles the update product use case.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new update product interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute applies a partial update and returns the stored product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	changes := domain.Changes{
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		Active:        req.Active,
	}
	if req.Images != nil {
		changes.Images = *req.Images
		changes.ReplaceImages = true
	}

	var updated *domain.Product
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		product, err := tx.Products().GetByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		defer product.ClearEvents()

		now := i.clock.Now()
		if err := product.Update(changes, now); err != nil {
			return err
		}
		if err := tx.Products().Update(ctx, product); err != nil {
			return err
		}
		if err := outbox.Append(ctx, tx.Outbox(), product.DomainEvents(), now); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}
