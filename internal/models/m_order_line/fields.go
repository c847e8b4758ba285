package m_order_line

// Field name constants for the order_lines table.
const (
	TableName = "order_lines"

	OrderID                  = "order_id"
	LineNo                   = "line_no"
	ProductID                = "product_id"
	ProductName              = "product_name"
	PurchasePriceNumerator   = "purchase_price_numerator"
	PurchasePriceDenominator = "purchase_price_denominator"
	SalePriceNumerator       = "sale_price_numerator"
	SalePriceDenominator     = "sale_price_denominator"
	Quantity                 = "quantity"
)

// Columns lists every column in Data order.
var Columns = []string{
	OrderID,
	LineNo,
	ProductID,
	ProductName,
	PurchasePriceNumerator,
	PurchasePriceDenominator,
	SalePriceNumerator,
	SalePriceDenominator,
	Quantity,
}
