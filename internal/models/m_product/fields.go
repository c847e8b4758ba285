package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID                = "product_id"
	Name                     = "name"
	Description              = "description"
	PurchasePriceNumerator   = "purchase_price_numerator"
	PurchasePriceDenominator = "purchase_price_denominator"
	SalePriceNumerator       = "sale_price_numerator"
	SalePriceDenominator     = "sale_price_denominator"
	MarginNumerator          = "margin_numerator"
	MarginDenominator        = "margin_denominator"
	Stock                    = "stock"
	Active                   = "active"
	Images                   = "images"
	Version                  = "version"
	CreatedAt                = "created_at"
	UpdatedAt                = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	PurchasePriceNumerator,
	PurchasePriceDenominator,
	SalePriceNumerator,
	SalePriceDenominator,
	MarginNumerator,
	MarginDenominator,
	Stock,
	Active,
	Images,
	Version,
	CreatedAt,
	UpdatedAt,
}
