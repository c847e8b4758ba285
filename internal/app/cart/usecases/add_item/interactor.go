package add_item

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request adds Quantity units of a product to the user's cart.
type Request struct {
	UserID    string
	ProductID string
	Quantity  int64
}

// Interactor handles the add to cart use case.
type Interactor struct {
	store contracts.Store
	carts contracts.CartStore
	clock clock.Clock
}

// NewInteractor creates a new add item interactor.
func NewInteractor(store contracts.Store, carts contracts.CartStore, clock clock.Clock) *Interactor {
	return &Interactor{
		store: store,
		carts: carts,
		clock: clock,
	}
}

// Execute snapshots the product from the catalog and adds it. Only active products can be
// added.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	var product *catalog.Product
	err := i.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		product, err = tx.Products().GetByID(ctx, req.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotActive, product.ID())
	}

	cart, err := i.carts.Load(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(Snapshot(product), req.Quantity, i.clock.Now()); err != nil {
		return nil, err
	}
	if err := i.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// Snapshot copies the fields of a product the cart displays.
func Snapshot(p *catalog.Product) domain.ProductSnapshot {
	s := domain.ProductSnapshot{
		ID:            p.ID(),
		Name:          p.Name(),
		PurchasePrice: p.PurchasePrice(),
		SalePrice:     p.SalePrice(),
		Stock:         p.Stock(),
	}
	if images := p.Images(); len(images) > 0 {
		s.Image = images[0]
	}
	return s
}
