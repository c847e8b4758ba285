package m_order

// Field name constants for the orders table.
const (
	TableName = "orders"

	OrderID          = "order_id"
	UserID           = "user_id"
	UserEmail        = "user_email"
	TotalNumerator   = "total_numerator"
	TotalDenominator = "total_denominator"
	Status           = "status"
	Shipping         = "shipping"
	Version          = "version"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	OrderID,
	UserID,
	UserEmail,
	TotalNumerator,
	TotalDenominator,
	Status,
	Shipping,
	Version,
	CreatedAt,
	UpdatedAt,
}
