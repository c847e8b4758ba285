package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/get_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/queries/list_orders"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/cancel_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/ordering/usecases/proceed_order"
)

// listOrders is the admin ledger view; ?status and ?userId narrow it.
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.svc.Queries.ListOrders.Execute(c.Request.Context(), &list_orders.Request{
		UserID: c.Query("userId"),
		Status: ordering.Status(c.Query("status")),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderList(orders))
}

func (h *Handler) listMyOrders(c *gin.Context) {
	orders, err := h.svc.Queries.ListOrders.Execute(c.Request.Context(), &list_orders.Request{
		UserID: currentUser(c).ID(),
		Status: ordering.Status(c.Query("status")),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderList(orders))
}

func (h *Handler) getOrder(c *gin.Context) {
	user := currentUser(c)
	order, err := h.svc.Queries.GetOrder.Execute(c.Request.Context(), &get_order.Request{
		OrderID:  c.Param("id"),
		ViewerID: user.ID(),
		IsAdmin:  user.IsAdmin(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	items := make([]place_order.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = place_order.Item{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	user := currentUser(c)
	order, err := h.svc.Commands.PlaceOrder.Execute(c.Request.Context(), &place_order.Request{
		Buyer:    ordering.Buyer{UserID: user.ID(), Email: user.Email()},
		Items:    items,
		Shipping: req.ShippingInfo,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) proceedOrder(c *gin.Context) {
	order, err := h.svc.Commands.ProceedOrder.Execute(c.Request.Context(), &proceed_order.Request{
		OrderID: c.Param("id"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.svc.Commands.CancelOrder.Execute(c.Request.Context(), &cancel_order.Request{
		OrderID: c.Param("id"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
