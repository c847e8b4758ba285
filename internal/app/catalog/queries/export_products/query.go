// Package export_products renders the admin product list as an Excel workbook.
package export_products

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Name", "Description", "PurchasePrice", "SalePrice", "Margin",
	"Stock", "Active", "Images", "CreatedAt", "UpdatedAt",
}

// Query handles the export products query use case.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new export products query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute returns an .xlsx workbook with one row per product, newest first.
func (q *Query) Execute(ctx context.Context) ([]byte, error) {
	var rows [][]any
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		products, err := tx.Products().List(ctx, contracts.ProductFilter{})
		if err != nil {
			return err
		}
		for _, p := range products {
			rows = append(rows, []any{
				p.ID(),
				p.Name(),
				p.Description(),
				p.PurchasePrice().Float64(),
				p.SalePrice().Float64(),
				p.Margin().Float64(),
				p.Stock(),
				strconv.FormatBool(p.IsActive()),
				strings.Join(p.Images(), ","),
				p.CreatedAt().Format(time.RFC3339),
				p.UpdatedAt().Format(time.RFC3339),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetValue(v)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
