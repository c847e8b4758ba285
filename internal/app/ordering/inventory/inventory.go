// Package inventory applies the stock movements produced by order transitions to the
// catalog, inside the caller's transaction.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/domainevent"
)

// Options controls how movements are applied. AllowOverdraw lets stock go negative
// instead of failing with ErrInsufficientStock. Reason is recorded on each adjustment.
type Options struct {
	AllowOverdraw bool
	Reason        string
	OrderID       string
}

// Apply adjusts stock for each movement and writes the products back. Products that no
// longer exist are skipped. It returns the domain events raised by the products.
// Nothing is written unless every movement is valid.
func Apply(ctx context.Context, repo contracts.ProductRepository, movements []ordering.StockMovement, opts Options, now time.Time, logger *slog.Logger) ([]domainevent.Event, error) {
	adjusted := make([]*catalog.Product, 0, len(movements))
	for _, m := range movements {
		product, err := repo.GetByID(ctx, m.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			logger.Warn("skipping stock movement for deleted product",
				"order_id", opts.OrderID,
				"product_id", m.ProductID,
				"delta", m.Delta,
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := product.AdjustStock(m.Delta, opts.AllowOverdraw, opts.Reason, now); err != nil {
			return nil, err
		}
		adjusted = append(adjusted, product)
	}

	var events []domainevent.Event
	for _, product := range adjusted {
		if err := repo.Update(ctx, product); err != nil {
			return nil, fmt.Errorf("update stock of %s: %w", product.ID(), err)
		}
		events = append(events, product.DomainEvents()...)
		product.ClearEvents()
	}
	return events, nil
}
