package sales_summary

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Summary is the admin dashboard view of the ledger. Revenue, Cost and Profit only count
// proceeded orders.
type Summary struct {
	TotalOrders     int
	PendingOrders   int
	ProceededOrders int
	CancelledOrders int
	Revenue         *money.Money
	Cost            *money.Money
	Profit          *money.Money
	TotalProducts   int
	ActiveProducts  int
	TotalUsers      int
}

// Query handles the dashboard query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new sales summary query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute aggregates the ledger and catalog counts from one consistent read.
func (q *Query) Execute(ctx context.Context) (*Summary, error) {
	s := &Summary{
		Revenue: money.Zero(),
		Cost:    money.Zero(),
	}

	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		orders, err := tx.Orders().List(ctx, contracts.OrderFilter{})
		if err != nil {
			return err
		}
		for _, o := range orders {
			s.TotalOrders++
			switch o.Status() {
			case domain.StatusPending:
				s.PendingOrders++
			case domain.StatusProceeded:
				s.ProceededOrders++
				s.Revenue = s.Revenue.Add(o.Total())
				s.Cost = s.Cost.Add(o.Cost())
			case domain.StatusCancelled:
				s.CancelledOrders++
			}
		}

		products, err := tx.Products().List(ctx, contracts.ProductFilter{})
		if err != nil {
			return err
		}
		s.TotalProducts = len(products)
		for _, p := range products {
			if p.IsActive() {
				s.ActiveProducts++
			}
		}

		users, err := tx.Users().List(ctx)
		if err != nil {
			return err
		}
		s.TotalUsers = len(users)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Profit = s.Revenue.Subtract(s.Cost)
	return s, nil
}
