package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID     string       `json:"product_id"`
	Name          string       `json:"name"`
	PurchasePrice *money.Money `json:"purchase_price"`
	SalePrice     *money.Money `json:"sale_price"`
	Stock         int64        `json:"stock"`
	Active        bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (e *ProductCreatedEvent) EventType() string     { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is emitted when product details are updated.
type ProductUpdatedEvent struct {
	ProductID     string       `json:"product_id"`
	Fields        []string     `json:"fields"`
	PurchasePrice *money.Money `json:"purchase_price"`
	SalePrice     *money.Money `json:"sale_price"`
	Margin        *money.Money `json:"margin"`
	Stock         int64        `json:"stock"`
	Active        bool         `json:"is_active"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (e *ProductUpdatedEvent) EventType() string     { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// StockAdjustedEvent is emitted when an order transition moves inventory.
type StockAdjustedEvent struct {
	ProductID  string    `json:"product_id"`
	Delta      int64     `json:"delta"`
	Stock      int64     `json:"stock"`
	Reason     string    `json:"reason"`
	AdjustedAt time.Time `json:"adjusted_at"`
}

func (e *StockAdjustedEvent) EventType() string     { return "product.stock_adjusted" }
func (e *StockAdjustedEvent) AggregateID() string   { return e.ProductID }
func (e *StockAdjustedEvent) OccurredAt() time.Time { return e.AdjustedAt }

// ProductDeletedEvent is emitted when a product is permanently removed.
type ProductDeletedEvent struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *ProductDeletedEvent) EventType() string     { return "product.deleted" }
func (e *ProductDeletedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
