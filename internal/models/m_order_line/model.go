package m_order_line

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the order_lines table.
// Lines are written once with their order and never updated.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting one order line.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.OrderID,
			data.LineNo,
			data.ProductID,
			data.ProductName,
			data.PurchasePriceNumerator,
			data.PurchasePriceDenominator,
			data.SalePriceNumerator,
			data.SalePriceDenominator,
			data.Quantity,
		},
	)
}
