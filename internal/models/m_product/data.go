package m_product

import (
	"time"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID                string    `spanner:"product_id"`
	Name                     string    `spanner:"name"`
	Description              string    `spanner:"description"`
	PurchasePriceNumerator   int64     `spanner:"purchase_price_numerator"`
	PurchasePriceDenominator int64     `spanner:"purchase_price_denominator"`
	SalePriceNumerator       int64     `spanner:"sale_price_numerator"`
	SalePriceDenominator     int64     `spanner:"sale_price_denominator"`
	MarginNumerator          int64     `spanner:"margin_numerator"`
	MarginDenominator        int64     `spanner:"margin_denominator"`
	Stock                    int64     `spanner:"stock"`
	Active                   bool      `spanner:"active"`
	Images                   []string  `spanner:"images"`
	Version                  int64     `spanner:"version"`
	CreatedAt                time.Time `spanner:"created_at"`
	UpdatedAt                time.Time `spanner:"updated_at"`
}
