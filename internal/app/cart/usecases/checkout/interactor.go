package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Request places an order from the buyer's cart.
type Request struct {
	Buyer    ordering.Buyer
	Shipping ordering.ShippingInfo
}

// Interactor turns a cart into a pending order. Prices are taken from the catalog at
// checkout, not from the cart snapshots.
type Interactor struct {
	carts      contracts.CartStore
	placeOrder *place_order.Interactor
	logger     *slog.Logger
}

// NewInteractor creates a new checkout interactor.
func NewInteractor(carts contracts.CartStore, placeOrder *place_order.Interactor, logger *slog.Logger) *Interactor {
	return &Interactor{
		carts:      carts,
		placeOrder: placeOrder,
		logger:     logger,
	}
}

// Execute places the order and then takes the ordered units out of the cart. Entries
// added while the order was being placed stay in the cart. A failure to update the cart
// is logged; the order stands.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*ordering.Order, error) {
	current, err := i.carts.Load(ctx, req.Buyer.UserID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, validation.Single("items", "cart is empty")
	}

	checkedOut := current.Items()
	items := make([]place_order.Item, 0, len(checkedOut))
	for _, it := range checkedOut {
		items = append(items, place_order.Item{ProductID: it.Product.ID, Quantity: it.Quantity})
	}

	order, err := i.placeOrder.Execute(ctx, &place_order.Request{
		Buyer:    req.Buyer,
		Items:    items,
		Shipping: req.Shipping,
	})
	if err != nil {
		return nil, err
	}

	if err := i.removeCheckedOut(ctx, req.Buyer.UserID, checkedOut, order.CreatedAt()); err != nil {
		i.logger.Warn("failed to clear cart after checkout",
			"user_id", req.Buyer.UserID,
			"order_id", order.ID(),
			"error", err,
		)
	}
	return order, nil
}

// removeCheckedOut reloads the cart and subtracts the ordered quantities from it.
func (i *Interactor) removeCheckedOut(ctx context.Context, userID string, checkedOut []cart.Item, now time.Time) error {
	latest, err := i.carts.Load(ctx, userID)
	if err != nil {
		return err
	}

	remaining := make(map[string]int64, len(latest.Items()))
	for _, it := range latest.Items() {
		remaining[it.Product.ID] = it.Quantity
	}
	for _, it := range checkedOut {
		left, ok := remaining[it.Product.ID]
		if !ok {
			continue
		}
		if err := latest.SetQuantity(it.Product.ID, left-it.Quantity, now); err != nil {
			return fmt.Errorf("failed to update cart entry %s: %w", it.Product.ID, err)
		}
	}

	if latest.IsEmpty() {
		return i.carts.Delete(ctx, userID)
	}
	return i.carts.Save(ctx, latest)
}
