// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
)

// ProductHandler handles catalog pages
type ProductHandler struct {
	productService *product.Service
	images         *product.ImageStore
	views          *Views
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, images *product.ImageStore, views *Views, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		images:         images,
		views:          views,
		config:         cfg,
	}
}

// Index handles GET /product/
func (h *ProductHandler) Index(c *gin.Context) {
	pageIndex := product.PageIndex(c.Query("page"))

	page, err := h.productService.List(c.Request.Context(), pageIndex, h.config.Catalog.PageSize)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	h.views.render(c, http.StatusOK, "Products retrieved successfully", h.views.withSubtotal(c, gin.H{
		"products":   page.Products,
		"pagination": page.Pagination,
	}))
}

// Detail handles GET /product/detail/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.productService.FindByID(c.Request.Context(), id)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	h.views.render(c, http.StatusOK, "Product retrieved successfully", h.views.withSubtotal(c, gin.H{
		"product":  p,
		"in_stock": p.IsInStock(),
		"product_purchase": purchase.ProductPurchase{
			ProductID: p.ID,
			Product:   *p,
			Quantity:  1,
		},
	}))
}

// Image handles GET /product/:id/image
func (h *ProductHandler) Image(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.productService.FindByID(c.Request.Context(), id)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	width, _ := strconv.Atoi(c.Query("width"))
	height, _ := strconv.Atoi(c.Query("height"))

	path, err := h.images.Path(p, width, height)
	if err != nil {
		if !errors.Is(err, product.ErrImageNotFound) {
			h.views.log.WithError(err).WithField("product_id", id).Error("Failed to prepare product image")
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Image not found",
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}

// About handles GET /product/about
func (h *ProductHandler) About(c *gin.Context) {
	h.views.render(c, http.StatusOK, "About "+h.config.App.Name, h.views.withSubtotal(c, gin.H{
		"name":    h.config.App.Name,
		"version": h.config.App.Version,
	}))
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}
