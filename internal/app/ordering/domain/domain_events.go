package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// OrderPlacedEvent is emitted when an order enters the ledger.
type OrderPlacedEvent struct {
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id"`
	Total     *money.Money `json:"total"`
	LineCount int          `json:"line_count"`
	PlacedAt  time.Time    `json:"placed_at"`
}

func (e *OrderPlacedEvent) EventType() string     { return "order.placed" }
func (e *OrderPlacedEvent) AggregateID() string   { return e.OrderID }
func (e *OrderPlacedEvent) OccurredAt() time.Time { return e.PlacedAt }

// OrderProceededEvent is emitted when an order is fulfilled.
type OrderProceededEvent struct {
	OrderID     string          `json:"order_id"`
	Movements   []StockMovement `json:"movements"`
	ProceededAt time.Time       `json:"proceeded_at"`
}

func (e *OrderProceededEvent) EventType() string     { return "order.proceeded" }
func (e *OrderProceededEvent) AggregateID() string   { return e.OrderID }
func (e *OrderProceededEvent) OccurredAt() time.Time { return e.ProceededAt }

// OrderCancelledEvent is emitted when an order is cancelled. Movements is empty when the
// order was still pending.
type OrderCancelledEvent struct {
	OrderID        string          `json:"order_id"`
	PreviousStatus Status          `json:"previous_status"`
	Movements      []StockMovement `json:"movements"`
	CancelledAt    time.Time       `json:"cancelled_at"`
}

func (e *OrderCancelledEvent) EventType() string     { return "order.cancelled" }
func (e *OrderCancelledEvent) AggregateID() string   { return e.OrderID }
func (e *OrderCancelledEvent) OccurredAt() time.Time { return e.CancelledAt }
