package memrepo

import (
	"context"
	"fmt"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

type productRepo struct {
	tx *tx
}

func (r *productRepo) GetByID(_ context.Context, productID string) (*catalog.Product, error) {
	row, ok := r.tx.state.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	return catalog.Reconstruct(row.snap), nil
}

func (r *productRepo) List(_ context.Context, filter contracts.ProductFilter) ([]*catalog.Product, error) {
	rows := make([]productRow, 0, len(r.tx.state.products))
	for _, row := range r.tx.state.products {
		if filter.ActiveOnly && !row.snap.Active {
			continue
		}
		rows = append(rows, row)
	}
	sortRows(rows, func(a, b productRow) bool {
		return newestFirst(a.snap.CreatedAt, b.snap.CreatedAt, a.seq, b.seq)
	})

	out := make([]*catalog.Product, len(rows))
	for i, row := range rows {
		out[i] = catalog.Reconstruct(row.snap)
	}
	return out, nil
}

func (r *productRepo) Insert(_ context.Context, product *catalog.Product) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.state.products[product.ID()]; exists {
		return fmt.Errorf("product %s already exists", product.ID())
	}
	snap := product.Snapshot()
	snap.Version = 1
	r.tx.state.products[product.ID()] = productRow{snap: snap, seq: r.tx.state.next()}
	return nil
}

func (r *productRepo) Update(_ context.Context, product *catalog.Product) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if !product.Changes().HasChanges() {
		return nil
	}
	row, ok := r.tx.state.products[product.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, product.ID())
	}
	snap := product.Snapshot()
	snap.Version = row.snap.Version + 1
	r.tx.state.products[product.ID()] = productRow{snap: snap, seq: row.seq}
	return nil
}

func (r *productRepo) Delete(_ context.Context, productID string) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.products[productID]; !ok {
		return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	delete(r.tx.state.products, productID)
	return nil
}
