package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

func newTestProduct(t *testing.T, now time.Time) *Product {
	t.Helper()
	p, err := NewProduct("prod-1", NewProductInput{
		Name:          "Espresso Machine",
		Description:   "15 bar pump",
		PurchasePrice: money.MustNew(12000, 100),
		SalePrice:     money.MustNew(19999, 100),
		Stock:         5,
		Active:        true,
		Images:        []string{"https://img/1.jpg", "  "},
	}, now)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("computes margin and timestamps", func(t *testing.T) {
		p := newTestProduct(t, now)

		assert.Equal(t, "79.99", p.Margin().String())
		assert.Equal(t, now, p.CreatedAt())
		assert.Equal(t, now, p.UpdatedAt())
		assert.Equal(t, []string{"https://img/1.jpg"}, p.Images())
		assert.True(t, p.Changes().HasChanges())

		events := p.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "product.created", events[0].EventType())
		assert.Equal(t, "prod-1", events[0].AggregateID())
	})

	t.Run("rejects invalid input with field errors", func(t *testing.T) {
		_, err := NewProduct("prod-2", NewProductInput{
			PurchasePrice: money.MustNew(-1, 1),
			SalePrice:     money.MustNew(5, 1),
			Stock:         -3,
		}, now)

		assert.ErrorIs(t, err, validation.ErrInvalid)
		fields := map[string]bool{}
		for _, f := range validation.FieldsOf(err) {
			fields[f.Field] = true
		}
		assert.True(t, fields["name"])
		assert.True(t, fields["description"])
		assert.True(t, fields["purchasePrice"])
		assert.True(t, fields["stock"])
	})

	t.Run("sale price must exceed purchase price", func(t *testing.T) {
		_, err := NewProduct("prod-3", NewProductInput{
			Name:          "Mug",
			Description:   "Ceramic",
			PurchasePrice: money.FromInt(10),
			SalePrice:     money.FromInt(8),
		}, now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("prices that do not fit storage are rejected", func(t *testing.T) {
		huge, err := money.Parse("99999999999999999999")
		require.NoError(t, err)

		_, err = NewProduct("prod-5", NewProductInput{
			Name:          "Yacht",
			Description:   "Large",
			PurchasePrice: money.FromInt(1),
			SalePrice:     huge,
		}, now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		require.Len(t, validation.FieldsOf(err), 1)
		assert.Equal(t, "salePrice", validation.FieldsOf(err)[0].Field)
	})

	t.Run("margin that does not fit storage is rejected", func(t *testing.T) {
		_, err := NewProduct("prod-6", NewProductInput{
			Name:          "Dust",
			Description:   "Very small",
			PurchasePrice: money.MustNew(1, math.MaxInt64),
			SalePrice:     money.MustNew(1, math.MaxInt64-1),
		}, now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("zero purchase price is allowed", func(t *testing.T) {
		p, err := NewProduct("prod-4", NewProductInput{
			Name:          "Sticker",
			Description:   "Free with orders",
			PurchasePrice: money.Zero(),
			SalePrice:     money.FromInt(1),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, "1.00", p.Margin().String())
	})
}

func TestProductUpdate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := now.Add(time.Hour)

	t.Run("both prices recompute margin", func(t *testing.T) {
		p := newTestProduct(t, now)
		p.ClearEvents()

		err := p.Update(Changes{
			PurchasePrice: money.FromInt(50),
			SalePrice:     money.FromInt(80),
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "30.00", p.Margin().String())
		assert.Equal(t, later, p.UpdatedAt())
		assert.True(t, p.Changes().Dirty(FieldMargin))
	})

	t.Run("single price recomputes margin from merged record", func(t *testing.T) {
		p := newTestProduct(t, now)

		require.NoError(t, p.Update(Changes{SalePrice: money.FromInt(150)}, later))
		assert.Equal(t, "30.00", p.Margin().String())

		require.NoError(t, p.Update(Changes{PurchasePrice: money.FromInt(100)}, later))
		assert.Equal(t, "50.00", p.Margin().String())
		assert.True(t, p.Margin().Equals(p.SalePrice().Subtract(p.PurchasePrice())))
	})

	t.Run("non-price update keeps margin and refreshes timestamp", func(t *testing.T) {
		p := newTestProduct(t, now)
		name := "Espresso Machine Pro"
		active := false

		require.NoError(t, p.Update(Changes{Name: &name, Active: &active}, later))
		assert.Equal(t, name, p.Name())
		assert.False(t, p.IsActive())
		assert.Equal(t, "79.99", p.Margin().String())
		assert.Equal(t, later, p.UpdatedAt())
	})

	t.Run("invalid update changes nothing", func(t *testing.T) {
		p := newTestProduct(t, now)
		p.ClearEvents()
		p.Changes().Clear()
		empty := ""

		err := p.Update(Changes{Name: &empty, SalePrice: money.FromInt(500)}, later)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Equal(t, "Espresso Machine", p.Name())
		assert.Equal(t, "199.99", p.SalePrice().String())
		assert.Equal(t, now, p.UpdatedAt())
		assert.False(t, p.Changes().HasChanges())
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("images are replaced only when requested", func(t *testing.T) {
		p := newTestProduct(t, now)

		require.NoError(t, p.Update(Changes{}, later))
		assert.Len(t, p.Images(), 1)

		require.NoError(t, p.Update(Changes{ReplaceImages: true}, later))
		assert.Empty(t, p.Images())
	})
}

func TestAdjustStock(t *testing.T) {
	now := time.Now().UTC()

	t.Run("decrement within stock", func(t *testing.T) {
		p := newTestProduct(t, now)
		require.NoError(t, p.AdjustStock(-2, false, "order.proceeded", now))
		assert.Equal(t, int64(3), p.Stock())
	})

	t.Run("overdraw rejected", func(t *testing.T) {
		p := newTestProduct(t, now)
		p.ClearEvents()
		err := p.AdjustStock(-6, false, "order.proceeded", now)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, int64(5), p.Stock())
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("overdraw allowed when configured", func(t *testing.T) {
		p := newTestProduct(t, now)
		require.NoError(t, p.AdjustStock(-6, true, "order.proceeded", now))
		assert.Equal(t, int64(-1), p.Stock())
	})

	t.Run("stock overflow rejected", func(t *testing.T) {
		p := newTestProduct(t, now)
		p.ClearEvents()
		err := p.AdjustStock(math.MaxInt64, false, "restock", now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Equal(t, int64(5), p.Stock())
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("stock underflow rejected even when overdraw is allowed", func(t *testing.T) {
		p := newTestProduct(t, now)
		require.NoError(t, p.AdjustStock(-6, true, "order.proceeded", now))
		err := p.AdjustStock(math.MinInt64, true, "order.proceeded", now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Equal(t, int64(-1), p.Stock())
	})

	t.Run("restock", func(t *testing.T) {
		p := newTestProduct(t, now)
		require.NoError(t, p.AdjustStock(4, false, "order.cancelled", now))
		assert.Equal(t, int64(9), p.Stock())
		events := p.DomainEvents()
		assert.Equal(t, "product.stock_adjusted", events[len(events)-1].EventType())
	})
}

func TestReconstruct(t *testing.T) {
	now := time.Now().UTC()
	original := newTestProduct(t, now)

	restored := Reconstruct(original.Snapshot())
	assert.Equal(t, original.Name(), restored.Name())
	assert.True(t, original.Margin().Equals(restored.Margin()))
	assert.False(t, restored.Changes().HasChanges())
	assert.Empty(t, restored.DomainEvents())
}
