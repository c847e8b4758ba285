package contracts

import (
	"context"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	ActiveOnly bool
}

// ProductRepository persists catalog products. Lists are newest first.
// Update writes only dirty fields and bumps the version.
type ProductRepository interface {
	GetByID(ctx context.Context, productID string) (*catalog.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*catalog.Product, error)
	Insert(ctx context.Context, product *catalog.Product) error
	Update(ctx context.Context, product *catalog.Product) error
	Delete(ctx context.Context, productID string) error
}

// OrderFilter narrows order listings. Empty fields match everything.
type OrderFilter struct {
	UserID string
	Status ordering.Status
}

// OrderRepository persists the ledger. Orders are never deleted.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*ordering.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*ordering.Order, error)
	Insert(ctx context.Context, order *ordering.Order) error
	Update(ctx context.Context, order *ordering.Order) error
}

// UserRepository persists accounts. Emails are compared in normalized form.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*account.User, error)
	GetByEmail(ctx context.Context, email string) (*account.User, error)
	List(ctx context.Context) ([]*account.User, error)
	Insert(ctx context.Context, user *account.User) error
	Update(ctx context.Context, user *account.User) error
	Delete(ctx context.Context, userID string) error
}
