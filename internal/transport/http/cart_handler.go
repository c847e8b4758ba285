package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/checkout"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/set_quantity"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
)

func (h *Handler) getCart(c *gin.Context) {
	cart, err := h.svc.Queries.GetCart.Execute(c.Request.Context(), currentUser(c).ID())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	cart, err := h.svc.Commands.AddCartItem.Execute(c.Request.Context(), &add_item.Request{
		UserID:    currentUser(c).ID(),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) setCartItemQuantity(c *gin.Context) {
	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	cart, err := h.svc.Commands.SetCartItemQty.Execute(c.Request.Context(), &set_quantity.Request{
		UserID:    currentUser(c).ID(),
		ProductID: c.Param("productId"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) removeCartItem(c *gin.Context) {
	cart, err := h.svc.Commands.RemoveCartItem.Execute(c.Request.Context(), &remove_item.Request{
		UserID:    currentUser(c).ID(),
		ProductID: c.Param("productId"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.svc.Commands.ClearCart.Execute(c.Request.Context(), currentUser(c).ID()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user := currentUser(c)
	order, err := h.svc.Commands.Checkout.Execute(c.Request.Context(), &checkout.Request{
		Buyer:    ordering.Buyer{UserID: user.ID(), Email: user.Email()},
		Shipping: req.ShippingInfo,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}
