package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Request contains the data needed to create a product.
type Request struct {
	Name          string
	Description   string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Stock         int64
	Active        bool
	Images        []string
}

// Interactor handles the create product use case.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute validates the input, computes the margin and stores the product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	now := i.clock.Now()

	product, err := domain.NewProduct(uuid.New().String(), domain.NewProductInput{
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		Active:        req.Active,
		Images:        req.Images,
	}, now)
	if err != nil {
		return nil, err
	}
	defer product.ClearEvents()

	err = i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.Products().Insert(ctx, product); err != nil {
			return err
		}
		return outbox.Append(ctx, tx.Outbox(), product.DomainEvents(), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
