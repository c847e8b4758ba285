package memrepo

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
)

type orderRepo struct {
	tx *tx
}

func (r *orderRepo) GetByID(_ context.Context, orderID string) (*ordering.Order, error) {
	row, ok := r.tx.state.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ordering.ErrOrderNotFound, orderID)
	}
	return ordering.Reconstruct(row.snap), nil
}

func (r *orderRepo) List(_ context.Context, filter contracts.OrderFilter) ([]*ordering.Order, error) {
	rows := make([]orderRow, 0, len(r.tx.state.orders))
	for _, row := range r.tx.state.orders {
		if filter.UserID != "" && row.snap.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && row.snap.Status != filter.Status {
			continue
		}
		rows = append(rows, row)
	}
	sortRows(rows, func(a, b orderRow) bool {
		return newestFirst(a.snap.CreatedAt, b.snap.CreatedAt, a.seq, b.seq)
	})

	out := make([]*ordering.Order, len(rows))
	for i, row := range rows {
		out[i] = ordering.Reconstruct(row.snap)
	}
	return out, nil
}

func (r *orderRepo) Insert(_ context.Context, order *ordering.Order) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.state.orders[order.ID()]; exists {
		return fmt.Errorf("order %s already exists", order.ID())
	}
	snap := order.Snapshot()
	snap.Version = 1
	r.tx.state.orders[order.ID()] = orderRow{snap: snap, seq: r.tx.state.next()}
	return nil
}

func (r *orderRepo) Update(_ context.Context, order *ordering.Order) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if !order.Changes().HasChanges() {
		return nil
	}
	row, ok := r.tx.state.orders[order.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ordering.ErrOrderNotFound, order.ID())
	}
	snap := order.Snapshot()
	snap.Version = row.snap.Version + 1
	r.tx.state.orders[order.ID()] = orderRow{snap: snap, seq: row.seq}
	return nil
}
