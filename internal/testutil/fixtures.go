// Package testutil holds fixtures shared by usecase, transport and integration tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ProductBuilder helps create products for tests with a fluent interface
type ProductBuilder struct {
	id            string
	name          string
	description   string
	purchasePrice *money.Money
	salePrice     *money.Money
	stock         int64
	active        bool
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		id:            uuid.New().String(),
		name:          "Test Product",
		description:   "Default Description",
		purchasePrice: money.FromInt(50),
		salePrice:     money.FromInt(100),
		stock:         10,
		active:        true,
	}
}

func (b *ProductBuilder) WithID(id string) *ProductBuilder     { b.id = id; return b }
func (b *ProductBuilder) WithName(name string) *ProductBuilder { b.name = name; return b }
func (b *ProductBuilder) WithStock(stock int64) *ProductBuilder {
	b.stock = stock
	return b
}

// WithPrices sets purchase and sale prices in cents.
func (b *ProductBuilder) WithPrices(purchaseCents, saleCents int64) *ProductBuilder {
	b.purchasePrice = money.MustNew(purchaseCents, 100)
	b.salePrice = money.MustNew(saleCents, 100)
	return b
}

// Inactive hides the product from the storefront.
func (b *ProductBuilder) Inactive() *ProductBuilder {
	b.active = false
	return b
}

// Build creates the aggregate without storing it.
func (b *ProductBuilder) Build(t *testing.T, now time.Time) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(b.id, catalog.NewProductInput{
		Name:          b.name,
		Description:   b.description,
		PurchasePrice: b.purchasePrice,
		SalePrice:     b.salePrice,
		Stock:         b.stock,
		Active:        b.active,
	}, now)
	require.NoError(t, err)
	return p
}

// SeedProduct stores a product directly, bypassing the usecases and the outbox.
func SeedProduct(t *testing.T, store contracts.Store, b *ProductBuilder, now time.Time) *catalog.Product {
	t.Helper()
	p := b.Build(t, now)
	err := store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		return tx.Products().Insert(ctx, p)
	})
	require.NoError(t, err, "failed to seed product")
	p.ClearEvents()
	return p
}

// SeedUser stores a user with the given password hash.
func SeedUser(t *testing.T, store contracts.Store, email string, role account.Role, passwordHash string, now time.Time) *account.User {
	t.Helper()
	u, err := account.NewUser(uuid.New().String(), email, "Test User", role, passwordHash, now)
	require.NoError(t, err)
	err = store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		return tx.Users().Insert(ctx, u)
	})
	require.NoError(t, err, "failed to seed user")
	u.ClearEvents()
	return u
}

// GetProduct reads a product back from the store.
func GetProduct(t *testing.T, store contracts.Store, productID string) *catalog.Product {
	t.Helper()
	var p *catalog.Product
	err := store.Read(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		p, err = tx.Products().GetByID(ctx, productID)
		return err
	})
	require.NoError(t, err)
	return p
}

// GetOrder reads an order back from the store.
func GetOrder(t *testing.T, store contracts.Store, orderID string) *ordering.Order {
	t.Helper()
	var o *ordering.Order
	err := store.Read(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		o, err = tx.Orders().GetByID(ctx, orderID)
		return err
	})
	require.NoError(t, err)
	return o
}

// OutboxEventTypes returns the types of all stored outbox events, oldest first.
func OutboxEventTypes(t *testing.T, store contracts.Store) []string {
	t.Helper()
	var events []*contracts.OutboxEvent
	err := store.Read(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		events, err = tx.Outbox().List(ctx, contracts.OutboxFilter{})
		return err
	})
	require.NoError(t, err)

	types := make([]string, len(events))
	for i, e := range events {
		types[len(events)-1-i] = e.EventType
	}
	return types
}

// GetUser reads a user back from the store.
func GetUser(t *testing.T, store contracts.Store, userID string) *account.User {
	t.Helper()
	var u *account.User
	err := store.Read(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, userID)
		return err
	})
	require.NoError(t, err)
	return u
}
