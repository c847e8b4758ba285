package http

import (
	"encoding/json"
	"time"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/sales_summary"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Requests

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type createProductRequest struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	PurchasePrice *money.Money `json:"purchasePrice"`
	SalePrice     *money.Money `json:"salePrice"`
	Stock         int64        `json:"stock"`
	IsActive      *bool        `json:"isActive"`
	Images        []string     `json:"images"`
}

type updateProductRequest struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	PurchasePrice *money.Money `json:"purchasePrice"`
	SalePrice     *money.Money `json:"salePrice"`
	Stock         *int64       `json:"stock"`
	IsActive      *bool        `json:"isActive"`
	Images        *[]string    `json:"images"`
}

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type placeOrderRequest struct {
	Items        []orderItemRequest    `json:"items"`
	ShippingInfo ordering.ShippingInfo `json:"shippingInfo"`
}

type checkoutRequest struct {
	ShippingInfo ordering.ShippingInfo `json:"shippingInfo"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type cartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// Responses

type productResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	PurchasePrice *money.Money `json:"purchasePrice"`
	SalePrice     *money.Money `json:"salePrice"`
	Margin        *money.Money `json:"margin"`
	Stock         int64        `json:"stock"`
	IsActive      bool         `json:"isActive"`
	Images        []string     `json:"images"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func toProductResponse(p *catalog.Product) productResponse {
	images := p.Images()
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PurchasePrice: p.PurchasePrice(),
		SalePrice:     p.SalePrice(),
		Margin:        p.Margin(),
		Stock:         p.Stock(),
		IsActive:      p.IsActive(),
		Images:        images,
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toProductList(products []*catalog.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// publicProductResponse is the storefront view of a product. Cost data stays in the admin view.
type publicProductResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	SalePrice   *money.Money `json:"salePrice"`
	Stock       int64        `json:"stock"`
	IsActive    bool         `json:"isActive"`
	Images      []string     `json:"images"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toPublicProduct(p *catalog.Product) publicProductResponse {
	full := toProductResponse(p)
	return publicProductResponse{
		ID:          full.ID,
		Name:        full.Name,
		Description: full.Description,
		SalePrice:   full.SalePrice,
		Stock:       full.Stock,
		IsActive:    full.IsActive,
		Images:      full.Images,
		CreatedAt:   full.CreatedAt,
		UpdatedAt:   full.UpdatedAt,
	}
}

func toPublicProductList(products []*catalog.Product) []publicProductResponse {
	out := make([]publicProductResponse, len(products))
	for i, p := range products {
		out[i] = toPublicProduct(p)
	}
	return out
}

type orderLineResponse struct {
	ProductID     string       `json:"productId"`
	Name          string       `json:"name"`
	PurchasePrice *money.Money `json:"purchasePrice"`
	SalePrice     *money.Money `json:"salePrice"`
	Quantity      int64        `json:"quantity"`
	Subtotal      *money.Money `json:"subtotal"`
}

type orderResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	UserEmail    string                `json:"userEmail"`
	Items        []orderLineResponse   `json:"items"`
	Total        *money.Money          `json:"total"`
	Status       ordering.Status       `json:"status"`
	ShippingInfo ordering.ShippingInfo `json:"shippingInfo"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func toOrderResponse(o *ordering.Order) orderResponse {
	lines := o.Lines()
	items := make([]orderLineResponse, len(lines))
	for i, l := range lines {
		items[i] = orderLineResponse{
			ProductID:     l.ProductID,
			Name:          l.ProductName,
			PurchasePrice: l.PurchasePrice,
			SalePrice:     l.SalePrice,
			Quantity:      l.Quantity,
			Subtotal:      l.Subtotal(),
		}
	}
	return orderResponse{
		ID:           o.ID(),
		UserID:       o.UserID(),
		UserEmail:    o.UserEmail(),
		Items:        items,
		Total:        o.Total(),
		Status:       o.Status(),
		ShippingInfo: o.Shipping(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toOrderList(orders []*ordering.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

type userResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Role      account.Role `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func toUserResponse(u *account.User) userResponse {
	return userResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func toAuthResponse(u *account.User, t session.Token) authResponse {
	return authResponse{Token: t.Value, ExpiresAt: t.ExpiresAt, User: toUserResponse(u)}
}

type cartItemResponse struct {
	Product  cart.ProductSnapshot `json:"product"`
	Quantity int64                `json:"quantity"`
	Subtotal *money.Money         `json:"subtotal"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	Total     *money.Money       `json:"total"`
	Count     int64              `json:"count"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	items := c.Items()
	out := cartResponse{
		Items: make([]cartItemResponse, len(items)),
		Total: c.Total(),
		Count: c.Count(),
	}
	for i, it := range items {
		out.Items[i] = cartItemResponse{Product: it.Product, Quantity: it.Quantity, Subtotal: it.Subtotal()}
	}
	if at := c.UpdatedAt(); !at.IsZero() {
		out.UpdatedAt = &at
	}
	return out
}

type dashboardResponse struct {
	TotalOrders     int          `json:"totalOrders"`
	PendingOrders   int          `json:"pendingOrders"`
	ProceededOrders int          `json:"proceededOrders"`
	CancelledOrders int          `json:"cancelledOrders"`
	Revenue         *money.Money `json:"revenue"`
	Cost            *money.Money `json:"cost"`
	Profit          *money.Money `json:"profit"`
	TotalProducts   int          `json:"totalProducts"`
	ActiveProducts  int          `json:"activeProducts"`
	TotalUsers      int          `json:"totalUsers"`
}

func toDashboardResponse(s *sales_summary.Summary) dashboardResponse {
	return dashboardResponse{
		TotalOrders:     s.TotalOrders,
		PendingOrders:   s.PendingOrders,
		ProceededOrders: s.ProceededOrders,
		CancelledOrders: s.CancelledOrders,
		Revenue:         s.Revenue,
		Cost:            s.Cost,
		Profit:          s.Profit,
		TotalProducts:   s.TotalProducts,
		ActiveProducts:  s.ActiveProducts,
		TotalUsers:      s.TotalUsers,
	}
}

type eventResponse struct {
	EventID      string          `json:"eventId"`
	EventType    string          `json:"eventType"`
	AggregateID  string          `json:"aggregateId"`
	Payload      json.RawMessage `json:"payload"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ProcessedAt  *time.Time      `json:"processedAt,omitempty"`
	RetryCount   int64           `json:"retryCount"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

func toEventList(events []*contracts.OutboxEvent) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, e := range events {
		payload := json.RawMessage(e.Payload)
		if !json.Valid(payload) {
			payload, _ = json.Marshal(e.Payload)
		}
		out[i] = eventResponse{
			EventID:      e.EventID,
			EventType:    e.EventType,
			AggregateID:  e.AggregateID,
			Payload:      payload,
			Status:       e.Status,
			CreatedAt:    e.CreatedAt,
			ProcessedAt:  e.ProcessedAt,
			RetryCount:   e.RetryCount,
			ErrorMessage: e.ErrorMessage,
		}
	}
	return out
}
