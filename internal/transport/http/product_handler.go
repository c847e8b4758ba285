package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/export_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/usecases/update_product"
)

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.svc.Queries.ListProducts.Execute(c.Request.Context(), &list_products.Request{ActiveOnly: true})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toPublicProductList(products))
}

func (h *Handler) listAllProducts(c *gin.Context) {
	products, err := h.svc.Queries.ListProducts.Execute(c.Request.Context(), &list_products.Request{})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(products))
}

// getProduct serves the storefront: active products only, without cost data.
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.svc.Queries.GetProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductID: c.Param("id"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toPublicProduct(product))
}

func (h *Handler) getProductAdmin(c *gin.Context) {
	product, err := h.svc.Queries.GetProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductID:       c.Param("id"),
		IncludeInactive: true,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product, err := h.svc.Commands.CreateProduct.Execute(c.Request.Context(), &create_product.Request{
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		Active:        active,
		Images:        req.Images,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	product, err := h.svc.Commands.UpdateProduct.Execute(c.Request.Context(), &update_product.Request{
		ProductID:     c.Param("id"),
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		Active:        req.IsActive,
		Images:        req.Images,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.svc.Commands.DeleteProduct.Execute(c.Request.Context(), &delete_product.Request{
		ProductID: c.Param("id"),
	}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportProducts(c *gin.Context) {
	data, err := h.svc.Queries.ExportProducts.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", h.svc.Infra.Clock.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export_products.ContentType, data)
}
