package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/changetracker"
	"github.com/light-bringer/storefront-service/internal/pkg/domainevent"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Field names for change tracking
const (
	FieldName          changetracker.Field = "name"
	FieldDescription   changetracker.Field = "description"
	FieldPurchasePrice changetracker.Field = "purchase_price"
	FieldSalePrice     changetracker.Field = "sale_price"
	FieldMargin        changetracker.Field = "margin"
	FieldStock         changetracker.Field = "stock"
	FieldActive        changetracker.Field = "is_active"
	FieldImages        changetracker.Field = "images"
	FieldUpdatedAt     changetracker.Field = "updated_at"
)

// Product is the aggregate root of the catalog.
// Margin is always salePrice - purchasePrice of the current record.
type Product struct {
	id            string
	name          string
	description   string
	purchasePrice *money.Money
	salePrice     *money.Money
	margin        *money.Money
	stock         int64
	active        bool
	images        []string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time

	changes *changetracker.Tracker
	domainevent.Recorder
}

// NewProductInput carries the fields accepted on creation.
type NewProductInput struct {
	Name          string
	Description   string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Stock         int64
	Active        bool
	Images        []string
}

// NewProduct creates a new Product aggregate.
func NewProduct(id string, in NewProductInput, now time.Time) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if err := validateDetails(name, description, in.PurchasePrice, in.SalePrice, in.Stock); err != nil {
		return nil, err
	}

	p := &Product{
		id:            id,
		name:          name,
		description:   description,
		purchasePrice: in.PurchasePrice.Copy(),
		salePrice:     in.SalePrice.Copy(),
		stock:         in.Stock,
		active:        in.Active,
		images:        cleanImages(in.Images),
		createdAt:     now,
		updatedAt:     now,
		changes:       changetracker.New(),
	}
	p.recomputeMargin()

	p.changes.MarkDirty(FieldName, FieldDescription, FieldPurchasePrice, FieldSalePrice,
		FieldMargin, FieldStock, FieldActive, FieldImages, FieldUpdatedAt)

	p.Record(&ProductCreatedEvent{
		ProductID:     p.id,
		Name:          p.name,
		PurchasePrice: p.purchasePrice.Copy(),
		SalePrice:     p.salePrice.Copy(),
		Stock:         p.stock,
		Active:        p.active,
		CreatedAt:     now,
	})

	return p, nil
}

// Snapshot is the persisted state of a product.
type Snapshot struct {
	ID            string
	Name          string
	Description   string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Stock         int64
	Active        bool
	Images        []string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Reconstruct reconstitutes a Product from storage. Margin is derived, never loaded.
func Reconstruct(s Snapshot) *Product {
	p := &Product{
		id:            s.ID,
		name:          s.Name,
		description:   s.Description,
		purchasePrice: s.PurchasePrice.Copy(),
		salePrice:     s.SalePrice.Copy(),
		stock:         s.Stock,
		active:        s.Active,
		images:        append([]string(nil), s.Images...),
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		changes:       changetracker.New(),
	}
	p.recomputeMargin()
	return p
}

// Snapshot returns a copy of the current state for persistence.
func (p *Product) Snapshot() Snapshot {
	return Snapshot{
		ID:            p.id,
		Name:          p.name,
		Description:   p.description,
		PurchasePrice: p.purchasePrice.Copy(),
		SalePrice:     p.salePrice.Copy(),
		Stock:         p.stock,
		Active:        p.active,
		Images:        p.Images(),
		Version:       p.version,
		CreatedAt:     p.createdAt,
		UpdatedAt:     p.updatedAt,
	}
}

// Getters
func (p *Product) ID() string                      { return p.id }
func (p *Product) Name() string                    { return p.name }
func (p *Product) Description() string             { return p.description }
func (p *Product) PurchasePrice() *money.Money     { return p.purchasePrice.Copy() }
func (p *Product) SalePrice() *money.Money         { return p.salePrice.Copy() }
func (p *Product) Margin() *money.Money            { return p.margin.Copy() }
func (p *Product) Stock() int64                    { return p.stock }
func (p *Product) IsActive() bool                  { return p.active }
func (p *Product) Images() []string                { return append([]string(nil), p.images...) }
func (p *Product) Version() int64                  { return p.version }
func (p *Product) CreatedAt() time.Time            { return p.createdAt }
func (p *Product) UpdatedAt() time.Time            { return p.updatedAt }
func (p *Product) Changes() *changetracker.Tracker { return p.changes }

// Changes describes a partial update. Nil fields are left untouched.
type Changes struct {
	Name          *string
	Description   *string
	PurchasePrice *money.Money
	SalePrice     *money.Money
	Stock         *int64
	Active        *bool
	Images        []string
	ReplaceImages bool
}

// Update applies a partial update. The merged record is validated before anything is
// changed, so a rejected update leaves the product untouched. Margin is recomputed from
// the merged prices whenever either price is supplied. UpdatedAt is always refreshed.
func (p *Product) Update(ch Changes, now time.Time) error {
	name, description := p.name, p.description
	if ch.Name != nil {
		name = strings.TrimSpace(*ch.Name)
	}
	if ch.Description != nil {
		description = strings.TrimSpace(*ch.Description)
	}
	purchase, sale := p.purchasePrice, p.salePrice
	if ch.PurchasePrice != nil {
		purchase = ch.PurchasePrice
	}
	if ch.SalePrice != nil {
		sale = ch.SalePrice
	}
	stock := p.stock
	if ch.Stock != nil {
		stock = *ch.Stock
	}

	if err := validateDetails(name, description, purchase, sale, stock); err != nil {
		return err
	}

	var fields []string
	if ch.Name != nil {
		p.name = name
		p.changes.MarkDirty(FieldName)
		fields = append(fields, string(FieldName))
	}
	if ch.Description != nil {
		p.description = description
		p.changes.MarkDirty(FieldDescription)
		fields = append(fields, string(FieldDescription))
	}
	if ch.PurchasePrice != nil {
		p.purchasePrice = ch.PurchasePrice.Copy()
		p.changes.MarkDirty(FieldPurchasePrice)
		fields = append(fields, string(FieldPurchasePrice))
	}
	if ch.SalePrice != nil {
		p.salePrice = ch.SalePrice.Copy()
		p.changes.MarkDirty(FieldSalePrice)
		fields = append(fields, string(FieldSalePrice))
	}
	if ch.PurchasePrice != nil || ch.SalePrice != nil {
		p.recomputeMargin()
		p.changes.MarkDirty(FieldMargin)
	}
	if ch.Stock != nil {
		p.stock = stock
		p.changes.MarkDirty(FieldStock)
		fields = append(fields, string(FieldStock))
	}
	if ch.Active != nil {
		p.active = *ch.Active
		p.changes.MarkDirty(FieldActive)
		fields = append(fields, string(FieldActive))
	}
	if ch.ReplaceImages {
		p.images = cleanImages(ch.Images)
		p.changes.MarkDirty(FieldImages)
		fields = append(fields, string(FieldImages))
	}

	p.touch(now)

	p.Record(&ProductUpdatedEvent{
		ProductID:     p.id,
		Fields:        fields,
		PurchasePrice: p.purchasePrice.Copy(),
		SalePrice:     p.salePrice.Copy(),
		Margin:        p.margin.Copy(),
		Stock:         p.stock,
		Active:        p.active,
		UpdatedAt:     now,
	})

	return nil
}

// AdjustStock moves inventory by delta. Unless allowNegative is set, a result below
// zero fails with ErrInsufficientStock and nothing changes.
func (p *Product) AdjustStock(delta int64, allowNegative bool, reason string, now time.Time) error {
	if (delta > 0 && p.stock > math.MaxInt64-delta) || (delta < 0 && p.stock < math.MinInt64-delta) {
		return validation.Single("delta", "moves stock of product %s out of range", p.id)
	}
	next := p.stock + delta
	if next < 0 && !allowNegative {
		return fmt.Errorf("%w: product %s has %d, needs %d", ErrInsufficientStock, p.id, p.stock, -delta)
	}

	p.stock = next
	p.changes.MarkDirty(FieldStock)
	p.touch(now)

	p.Record(&StockAdjustedEvent{
		ProductID:  p.id,
		Delta:      delta,
		Stock:      p.stock,
		Reason:     reason,
		AdjustedAt: now,
	})

	return nil
}

// MarkDeleted records the deletion event. Removal itself is the repository's job.
func (p *Product) MarkDeleted(now time.Time) {
	p.Record(&ProductDeletedEvent{ProductID: p.id, DeletedAt: now})
}

func (p *Product) touch(now time.Time) {
	p.updatedAt = now
	p.changes.MarkDirty(FieldUpdatedAt)
}

func (p *Product) recomputeMargin() {
	p.margin = p.salePrice.Subtract(p.purchasePrice)
}

func validateDetails(name, description string, purchase, sale *money.Money, stock int64) error {
	var errs validation.Errors
	if name == "" {
		errs.Add("name", "is required")
	}
	if description == "" {
		errs.Add("description", "is required")
	}
	if purchase == nil {
		errs.Add("purchasePrice", "is required")
	} else if purchase.IsNegative() {
		errs.Add("purchasePrice", "must not be negative")
	} else if !storable(purchase) {
		errs.Add("purchasePrice", "is out of range")
	}
	if sale == nil {
		errs.Add("salePrice", "is required")
	} else if sale.IsNegative() {
		errs.Add("salePrice", "must not be negative")
	} else if !storable(sale) {
		errs.Add("salePrice", "is out of range")
	}
	if purchase != nil && sale != nil && !purchase.IsZero() && !sale.IsZero() && !sale.GreaterThan(purchase) {
		errs.Add("salePrice", "must be greater than purchase price")
	}
	if purchase != nil && sale != nil && storable(purchase) && storable(sale) && !storable(sale.Subtract(purchase)) {
		errs.Add("salePrice", "gives a margin that is out of range")
	}
	if stock < 0 {
		errs.Add("stock", "must not be negative")
	}
	return errs.Err()
}

// storable reports whether m fits the int64 numerator and denominator columns.
func storable(m *money.Money) bool {
	_, _, err := m.Parts()
	return err == nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
