// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/flash"
)

// AddToCartRequest is the add-to-cart form
type AddToCartRequest struct {
	ProductID uint `form:"productId" binding:"required"`
	Quantity  int  `form:"quantity"`
}

// UpdateCartRequest is the quantity update form
type UpdateCartRequest struct {
	ProductID   uint `form:"productId" binding:"required"`
	NewQuantity int  `form:"newQuantity"`
}

// RemoveFromCartRequest is the remove-line form
type RemoveFromCartRequest struct {
	ProductID uint `form:"productId" binding:"required"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	views       *Views
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, views *Views) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		views:       views,
	}
}

// View handles GET /cart
func (h *CartHandler) View(c *gin.Context) {
	p, err := h.cartService.View(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.views.fail(c, err)
		return
	}

	h.views.render(c, http.StatusOK, "Cart retrieved successfully", gin.H{
		"purchase":   p,
		"item_count": p.TotalQuantity(),
		"sub_total":  money(p.Subtotal()),
	})
}

// Add handles POST /cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req AddToCartRequest
	if !bindForm(c, &req) {
		return
	}

	out, err := h.cartService.AddItem(c.Request.Context(), middleware.GetSessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	msg := flash.Success(out.Message)
	h.views.redirect(c, productsPath, &msg)
}

// Update handles POST /cart/update
func (h *CartHandler) Update(c *gin.Context) {
	var req UpdateCartRequest
	if !bindForm(c, &req) {
		return
	}

	out, err := h.cartService.UpdateItem(c.Request.Context(), middleware.GetSessionID(c), req.ProductID, req.NewQuantity)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	h.afterLineChange(c, out)
}

// Remove handles POST /cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	var req RemoveFromCartRequest
	if !bindForm(c, &req) {
		return
	}

	out, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), req.ProductID)
	if err != nil {
		h.views.fail(c, err)
		return
	}

	h.afterLineChange(c, out)
}

// Empty handles POST /cart/empty
func (h *CartHandler) Empty(c *gin.Context) {
	out, err := h.cartService.Clear(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.views.fail(c, err)
		return
	}

	msg := flash.Success(out.Message)
	h.views.redirect(c, productsPath, &msg)
}

// afterLineChange returns to the cart, or to the listing once nothing is left
func (h *CartHandler) afterLineChange(c *gin.Context, out *cart.Outcome) {
	var msg *flash.Message
	if out.Message != "" {
		m := flash.Success(out.Message)
		msg = &m
	}

	location := cartPath
	if out.Empty {
		location = productsPath
	}
	h.views.redirect(c, location, msg)
}

func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return false
	}
	return true
}
