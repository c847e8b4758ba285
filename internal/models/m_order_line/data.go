package m_order_line

// Data represents the database model for the order_lines table, interleaved in orders.
type Data struct {
	OrderID                  string `spanner:"order_id"`
	LineNo                   int64  `spanner:"line_no"`
	ProductID                string `spanner:"product_id"`
	ProductName              string `spanner:"product_name"`
	PurchasePriceNumerator   int64  `spanner:"purchase_price_numerator"`
	PurchasePriceDenominator int64  `spanner:"purchase_price_denominator"`
	SalePriceNumerator       int64  `spanner:"sale_price_numerator"`
	SalePriceDenominator     int64  `spanner:"sale_price_denominator"`
	Quantity                 int64  `spanner:"quantity"`
}
