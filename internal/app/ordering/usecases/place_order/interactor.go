package place_order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Item is one requested line.
type Item struct {
	ProductID string
	Quantity  int64
}

// Request contains the data needed to place an order.
type Request struct {
	Buyer    domain.Buyer
	Items    []Item
	Shipping domain.ShippingInfo
}

// Interactor handles the place order use case. Prices are captured from the catalog in
// the same transaction; stock is not touched until the order is proceeded.
type Interactor struct {
	store contracts.Store
	clock clock.Clock
}

// NewInteractor creates a new place order interactor.
func NewInteractor(store contracts.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		clock: clock,
	}
}

// Execute creates a pending order.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, validation.Single("items", "must contain at least one item")
	}

	var placed *domain.Order
	err := i.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		lines := make([]domain.Line, 0, len(req.Items))
		for idx, item := range req.Items {
			if item.Quantity < 1 || item.Quantity > validation.MaxQuantity {
				return validation.Single(fmt.Sprintf("items[%d].quantity", idx), "must be between 1 and %d", validation.MaxQuantity)
			}
			product, err := tx.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return fmt.Errorf("%w: %s", catalog.ErrProductNotActive, product.ID())
			}
			lines = append(lines, domain.Line{
				ProductID:     product.ID(),
				ProductName:   product.Name(),
				PurchasePrice: product.PurchasePrice(),
				SalePrice:     product.SalePrice(),
				Quantity:      item.Quantity,
			})
		}

		now := i.clock.Now()
		order, err := domain.PlaceOrder(uuid.New().String(), req.Buyer, lines, req.Shipping, now)
		if err != nil {
			return err
		}
		defer order.ClearEvents()

		if err := tx.Orders().Insert(ctx, order); err != nil {
			return err
		}
		if err := outbox.Append(ctx, tx.Outbox(), order.DomainEvents(), now); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return placed, nil
}
