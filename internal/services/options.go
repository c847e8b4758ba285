// Package services wires configuration, infrastructure and use cases together.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/queries/current_user"
	"github.com/light-bringer/storefront-service/internal/app/account/queries/get_user"
	"github.com/light-bringer/storefront-service/internal/app/account/queries/list_users"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/create_user"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/delete_user"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/ensure_admin"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/login"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/register"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/reset_password"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_password"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_profile"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_user"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/checkout"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/set_quantity"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/export_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/get_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/list_orders"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/sales_summary"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/cancel_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/proceed_order"
	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/app/outbox/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/messaging/kafka"
	"github.com/light-bringer/storefront-service/internal/messaging/memory"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/repo/rediscart"
	"github.com/light-bringer/storefront-service/internal/repo/spannerrepo"
)

// Commands groups the write use cases.
type Commands struct {
	CreateProduct *create_product.Interactor
	UpdateProduct *update_product.Interactor
	DeleteProduct *delete_product.Interactor

	PlaceOrder   *place_order.Interactor
	ProceedOrder *proceed_order.Interactor
	CancelOrder  *cancel_order.Interactor

	Register       *register.Interactor
	Login          *login.Interactor
	UpdateProfile  *update_profile.Interactor
	UpdatePassword *update_password.Interactor
	ResetPassword  *reset_password.Interactor
	CreateUser     *create_user.Interactor
	UpdateUser     *update_user.Interactor
	DeleteUser     *delete_user.Interactor
	EnsureAdmin    *ensure_admin.Interactor

	AddCartItem    *add_item.Interactor
	SetCartItemQty *set_quantity.Interactor
	RemoveCartItem *remove_item.Interactor
	ClearCart      *clear_cart.Interactor
	Checkout       *checkout.Interactor
}

// Queries groups the read use cases.
type Queries struct {
	GetProduct     *get_product.Query
	ListProducts   *list_products.Query
	ExportProducts *export_products.Query

	GetOrder     *get_order.Query
	ListOrders   *list_orders.Query
	SalesSummary *sales_summary.Query

	CurrentUser *current_user.Query
	GetUser     *get_user.Query
	ListUsers   *list_users.Query

	GetCart *get_cart.Query

	ListEvents *list_events.Query
}

// Infrastructure is the set of adapters the use cases run on.
type Infrastructure struct {
	Store     contracts.Store
	Carts     contracts.CartStore
	Publisher contracts.Publisher
	Clock     clock.Clock
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config   config.Config
	Logger   *slog.Logger
	Infra    Infrastructure
	Sessions *session.Manager
	Relay    *outbox.Relay
	Commands Commands
	Queries  Queries

	spannerClient *spanner.Client
	redisClient   *redis.Client
}

// NewServiceOptions creates the adapters selected by cfg and wires up all use cases.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	clk := clock.NewRealClock()
	infra := Infrastructure{Clock: clk}

	var spannerClient *spanner.Client
	switch cfg.Storage.Backend {
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.Storage.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		spannerClient = client
		infra.Store = spannerrepo.NewStore(client)
	default:
		infra.Store = memrepo.NewStore()
	}

	var redisClient *redis.Client
	switch cfg.Cart.Backend {
	case config.BackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cart.RedisAddr,
			Password: cfg.Cart.RedisPassword,
			DB:       cfg.Cart.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			if spannerClient != nil {
				spannerClient.Close()
			}
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		infra.Carts = rediscart.NewStore(redisClient, cfg.Cart.TTL)
	default:
		infra.Carts = memrepo.NewCartStore(cfg.Cart.TTL, clk)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		infra.Publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		infra.Publisher = memory.NewPublisher(logger)
	}

	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Auth.JWTSecret = secret
		logger.Warn("JWT_SECRET not set, using an ephemeral secret; sessions end on restart")
	}

	opts := New(cfg, logger, infra)
	opts.spannerClient = spannerClient
	opts.redisClient = redisClient
	return opts, nil
}

// New wires use cases on top of ready adapters.
func New(cfg config.Config, logger *slog.Logger, infra Infrastructure) *ServiceOptions {
	store, carts, clk := infra.Store, infra.Carts, infra.Clock

	hasher := credentials.NewHasher(cfg.Auth.BcryptCost)
	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL, clk)
	placeOrder := place_order.NewInteractor(store, clk)

	commands := Commands{
		CreateProduct: create_product.NewInteractor(store, clk),
		UpdateProduct: update_product.NewInteractor(store, clk),
		DeleteProduct: delete_product.NewInteractor(store, clk),

		PlaceOrder:   placeOrder,
		ProceedOrder: proceed_order.NewInteractor(store, clk, logger, cfg.Orders.AllowStockOverdraw),
		CancelOrder:  cancel_order.NewInteractor(store, clk, logger),

		Register:       register.NewInteractor(store, hasher, sessions, clk),
		Login:          login.NewInteractor(store, hasher, sessions),
		UpdateProfile:  update_profile.NewInteractor(store, clk),
		UpdatePassword: update_password.NewInteractor(store, hasher, clk),
		ResetPassword:  reset_password.NewInteractor(store, clk, logger),
		CreateUser:     create_user.NewInteractor(store, hasher, clk),
		UpdateUser:     update_user.NewInteractor(store, clk),
		DeleteUser:     delete_user.NewInteractor(store, clk),
		EnsureAdmin:    ensure_admin.NewInteractor(store, hasher, clk, logger),

		AddCartItem:    add_item.NewInteractor(store, carts, clk),
		SetCartItemQty: set_quantity.NewInteractor(carts, clk),
		RemoveCartItem: remove_item.NewInteractor(carts, clk),
		ClearCart:      clear_cart.NewInteractor(carts),
		Checkout:       checkout.NewInteractor(carts, placeOrder, logger),
	}

	queries := Queries{
		GetProduct:     get_product.NewQuery(store),
		ListProducts:   list_products.NewQuery(store),
		ExportProducts: export_products.NewQuery(store),

		GetOrder:     get_order.NewQuery(store),
		ListOrders:   list_orders.NewQuery(store),
		SalesSummary: sales_summary.NewQuery(store),

		CurrentUser: current_user.NewQuery(store, sessions),
		GetUser:     get_user.NewQuery(store),
		ListUsers:   list_users.NewQuery(store),

		GetCart: get_cart.NewQuery(carts),

		ListEvents: list_events.NewQuery(store),
	}

	relay := outbox.NewRelay(store, infra.Publisher, clk, logger, outbox.RelayConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxRetries:   cfg.Outbox.MaxRetries,
	})

	return &ServiceOptions{
		Config:   cfg,
		Logger:   logger,
		Infra:    infra,
		Sessions: sessions,
		Relay:    relay,
		Commands: commands,
		Queries:  queries,
	}
}

// BootstrapAdmin ensures the configured admin account exists. It does nothing when no
// bootstrap email is configured.
func (s *ServiceOptions) BootstrapAdmin(ctx context.Context) error {
	b := s.Config.Bootstrap
	if b.Email == "" {
		return nil
	}
	if err := s.Commands.EnsureAdmin.Execute(ctx, &ensure_admin.Request{
		Email:    b.Email,
		Password: b.Password,
		Name:     b.Name,
	}); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	return nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Infra.Publisher != nil {
		if err := s.Infra.Publisher.Close(); err != nil {
			s.Logger.Warn("failed to close publisher", "error", err)
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if s.spannerClient != nil {
		s.spannerClient.Close()
	}
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
