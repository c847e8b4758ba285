package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/changetracker"
	"github.com/light-bringer/storefront-service/internal/pkg/domainevent"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusProceeded Status = "proceeded"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProceeded, StatusCancelled:
		return true
	}
	return false
}

// Field names for change tracking. Lines and total never change after placement.
const (
	FieldStatus    changetracker.Field = "status"
	FieldUpdatedAt changetracker.Field = "updated_at"
)

// Line is a snapshot of a product taken when the order was placed.
type Line struct {
	ProductID     string
	ProductName   string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Quantity      int64
}

// Subtotal returns salePrice * quantity.
func (l Line) Subtotal() *money.Money {
	return l.SalePrice.MultiplyInt(l.Quantity)
}

// Cost returns purchasePrice * quantity.
func (l Line) Cost() *money.Money {
	return l.PurchasePrice.MultiplyInt(l.Quantity)
}

func (l Line) copyLine() Line {
	l.PurchasePrice = l.PurchasePrice.Copy()
	l.SalePrice = l.SalePrice.Copy()
	return l
}

// ShippingInfo is where the buyer wants the order delivered.
type ShippingInfo struct {
	FullName   string `json:"fullName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Buyer identifies the user placing the order.
type Buyer struct {
	UserID string
	Email  string
}

// StockMovement is an inventory change caused by a status transition.
type StockMovement struct {
	ProductID string `json:"product_id"`
	Delta     int64  `json:"delta"`
}

// Order is the aggregate root of the ledger.
type Order struct {
	id        string
	userID    string
	userEmail string
	lines     []Line
	total     *money.Money
	status    Status
	shipping  ShippingInfo
	version   int64
	createdAt time.Time
	updatedAt time.Time

	changes *changetracker.Tracker
	domainevent.Recorder
}

// PlaceOrder creates a pending order. Lines for the same product are merged.
// No stock is touched here; inventory only moves on Proceed and Cancel.
func PlaceOrder(id string, buyer Buyer, lines []Line, shipping ShippingInfo, now time.Time) (*Order, error) {
	var errs validation.Errors
	if strings.TrimSpace(buyer.UserID) == "" {
		errs.Add("userId", "is required")
	}
	if len(lines) == 0 {
		errs.Add("items", "must contain at least one item")
	}
	for i, l := range lines {
		if l.ProductID == "" {
			errs.Add(fmt.Sprintf("items[%d].productId", i), "is required")
		}
		if l.Quantity < 1 || l.Quantity > validation.MaxQuantity {
			errs.Add(fmt.Sprintf("items[%d].quantity", i), "must be between 1 and %d", validation.MaxQuantity)
		}
		if l.SalePrice == nil || l.PurchasePrice == nil {
			errs.Add(fmt.Sprintf("items[%d]", i), "prices are required")
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	merged := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for i, l := range lines {
		if at, ok := index[l.ProductID]; ok {
			if merged[at].Quantity > validation.MaxQuantity-l.Quantity {
				errs.Add(fmt.Sprintf("items[%d].quantity", i), "total quantity of product %s exceeds %d", l.ProductID, validation.MaxQuantity)
				continue
			}
			merged[at].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l.copyLine())
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	total := sumSubtotals(merged)
	if _, _, err := total.Parts(); err != nil {
		return nil, validation.Single("items", "order total is out of range")
	}

	o := &Order{
		id:        id,
		userID:    buyer.UserID,
		userEmail: buyer.Email,
		lines:     merged,
		total:     total,
		status:    StatusPending,
		shipping:  shipping,
		createdAt: now,
		updatedAt: now,
		changes:   changetracker.New(),
	}
	o.changes.MarkDirty(FieldStatus, FieldUpdatedAt)

	o.Record(&OrderPlacedEvent{
		OrderID:   o.id,
		UserID:    o.userID,
		Total:     o.total.Copy(),
		LineCount: len(o.lines),
		PlacedAt:  now,
	})

	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID        string
	UserID    string
	UserEmail string
	Lines     []Line
	Total     *money.Money
	Status    Status
	Shipping  ShippingInfo
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reconstruct reconstitutes an Order from storage.
func Reconstruct(s Snapshot) *Order {
	lines := make([]Line, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = l.copyLine()
	}
	return &Order{
		id:        s.ID,
		userID:    s.UserID,
		userEmail: s.UserEmail,
		lines:     lines,
		total:     s.Total.Copy(),
		status:    s.Status,
		shipping:  s.Shipping,
		version:   s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		changes:   changetracker.New(),
	}
}

// Snapshot returns a copy of the current state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:        o.id,
		UserID:    o.userID,
		UserEmail: o.userEmail,
		Lines:     o.Lines(),
		Total:     o.total.Copy(),
		Status:    o.status,
		Shipping:  o.shipping,
		Version:   o.version,
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
	}
}

// Getters
func (o *Order) ID() string                      { return o.id }
func (o *Order) UserID() string                  { return o.userID }
func (o *Order) UserEmail() string               { return o.userEmail }
func (o *Order) Total() *money.Money             { return o.total.Copy() }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Shipping() ShippingInfo          { return o.shipping }
func (o *Order) Version() int64                  { return o.version }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
func (o *Order) Changes() *changetracker.Tracker { return o.changes }

// Lines returns copies of the order lines.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	for i, l := range o.lines {
		out[i] = l.copyLine()
	}
	return out
}

// Cost returns the purchase cost of all lines.
func (o *Order) Cost() *money.Money {
	cost := money.Zero()
	for _, l := range o.lines {
		cost = cost.Add(l.Cost())
	}
	return cost
}

// Proceed fulfils a pending order and returns the stock decrements it implies.
func (o *Order) Proceed(now time.Time) ([]StockMovement, error) {
	if o.status != StatusPending {
		return nil, fmt.Errorf("%w: cannot proceed %s order", ErrInvalidTransition, o.status)
	}

	movements := o.movements(-1)
	o.status = StatusProceeded
	o.touch(now)

	o.Record(&OrderProceededEvent{
		OrderID:     o.id,
		Movements:   movements,
		ProceededAt: now,
	})

	return movements, nil
}

// Cancel cancels a pending or proceeded order. Cancelling a proceeded order returns the
// compensating stock increments; cancelling a pending order returns none.
func (o *Order) Cancel(now time.Time) ([]StockMovement, error) {
	previous := o.status
	var movements []StockMovement

	switch previous {
	case StatusPending:
	case StatusProceeded:
		movements = o.movements(1)
	default:
		return nil, fmt.Errorf("%w: cannot cancel %s order", ErrInvalidTransition, previous)
	}

	o.status = StatusCancelled
	o.touch(now)

	o.Record(&OrderCancelledEvent{
		OrderID:        o.id,
		PreviousStatus: previous,
		Movements:      movements,
		CancelledAt:    now,
	})

	return movements, nil
}

// OwnedBy reports whether the order belongs to the user.
func (o *Order) OwnedBy(userID string) bool {
	return o.userID == userID
}

func (o *Order) movements(sign int64) []StockMovement {
	out := make([]StockMovement, 0, len(o.lines))
	for _, l := range o.lines {
		out = append(out, StockMovement{ProductID: l.ProductID, Delta: sign * l.Quantity})
	}
	return out
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
	o.changes.MarkDirty(FieldStatus, FieldUpdatedAt)
}

func sumSubtotals(lines []Line) *money.Money {
	total := money.Zero()
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
