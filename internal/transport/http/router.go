// Package http exposes the storefront REST API.
package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/services"
)

// Handler serves the REST API on top of the wired use cases.
type Handler struct {
	svc    *services.ServiceOptions
	logger *slog.Logger
}

// NewRouter builds the gin engine with all routes mounted under /api.
func NewRouter(svc *services.ServiceOptions) *gin.Engine {
	h := &Handler{svc: svc, logger: svc.Logger}

	r := gin.New()
	r.Use(recovery(h.logger), requestLogger(h.logger))
	r.Use(cors.New(corsConfig(svc.Config.CORSAllowedOrigins)))

	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	auth := authenticate(svc.Queries.CurrentUser, h.logger)
	admin := requireAdmin(h.logger)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", h.login)
		authRoutes.POST("/register", h.register)
		authRoutes.POST("/reset-password", h.resetPassword)
		authRoutes.GET("/me", auth, h.me)
		authRoutes.PUT("/profile", auth, h.updateProfile)
		authRoutes.PUT("/password", auth, h.updatePassword)
	}

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	user := api.Group("", auth)
	{
		user.GET("/orders", h.listMyOrders)
		user.GET("/orders/:id", h.getOrder)
		user.POST("/orders", h.placeOrder)

		user.GET("/cart", h.getCart)
		user.DELETE("/cart", h.clearCart)
		user.POST("/cart/items", h.addCartItem)
		user.PUT("/cart/items/:productId", h.setCartItemQuantity)
		user.DELETE("/cart/items/:productId", h.removeCartItem)
		user.POST("/cart/checkout", h.checkout)
	}

	adminRoutes := api.Group("/admin", auth, admin)
	{
		adminRoutes.GET("/dashboard", h.dashboard)
		adminRoutes.GET("/events", h.listEvents)

		adminRoutes.GET("/products", h.listAllProducts)
		adminRoutes.GET("/products/export", h.exportProducts)
		adminRoutes.GET("/products/:id", h.getProductAdmin)
		adminRoutes.POST("/products", h.createProduct)
		adminRoutes.PUT("/products/:id", h.updateProduct)
		adminRoutes.DELETE("/products/:id", h.deleteProduct)

		adminRoutes.GET("/orders", h.listOrders)
		adminRoutes.PUT("/orders/:id/proceed", h.proceedOrder)
		adminRoutes.PUT("/orders/:id/cancel", h.cancelOrder)

		adminRoutes.GET("/users", h.listUsers)
		adminRoutes.GET("/users/:id", h.getUser)
		adminRoutes.POST("/users", h.createUser)
		adminRoutes.PUT("/users/:id", h.updateUser)
		adminRoutes.DELETE("/users/:id", h.deleteUser)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
