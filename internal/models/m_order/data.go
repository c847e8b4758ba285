package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the orders table.
type Data struct {
	OrderID          string           `spanner:"order_id"`
	UserID           string           `spanner:"user_id"`
	UserEmail        string           `spanner:"user_email"`
	TotalNumerator   int64            `spanner:"total_numerator"`
	TotalDenominator int64            `spanner:"total_denominator"`
	Status           string           `spanner:"status"`
	Shipping         spanner.NullJSON `spanner:"shipping"`
	Version          int64            `spanner:"version"`
	CreatedAt        time.Time        `spanner:"created_at"`
	UpdatedAt        time.Time        `spanner:"updated_at"`
}
