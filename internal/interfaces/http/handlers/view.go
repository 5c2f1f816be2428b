// internal/interfaces/http/handlers/view.go
package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/inventory"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/flash"
)

const (
	productsPath = "/product/"
	cartPath     = "/cart"
	errorPath    = "/error"
)

// Views renders page envelopes and redirects carrying flash messages
type Views struct {
	flashes flash.Store
	cart    *cart.Service
	log     *logrus.Logger
}

// NewViews creates the shared page renderer
func NewViews(flashes flash.Store, cartService *cart.Service, log *logrus.Logger) *Views {
	return &Views{
		flashes: flashes,
		cart:    cartService,
		log:     log,
	}
}

// render writes the page envelope and consumes the pending flash message
func (v *Views) render(c *gin.Context, status int, message string, data gin.H) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"flash":   v.popFlash(c),
	})
}

// withSubtotal adds the cart subtotal to data when the session has a cart
func (v *Views) withSubtotal(c *gin.Context, data gin.H) gin.H {
	p, err := v.cart.Peek(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		v.log.WithError(err).Warn("Failed to load cart subtotal")
		return data
	}
	if p != nil {
		data["sub_total"] = money(p.Subtotal())
	}
	return data
}

func (v *Views) popFlash(c *gin.Context) *flash.Message {
	msg, err := v.flashes.Pop(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		v.log.WithError(err).Warn("Failed to read flash message")
		return nil
	}
	return msg
}

// redirect responds 303 after storing msg for the next page view
func (v *Views) redirect(c *gin.Context, location string, msg *flash.Message) {
	if msg != nil {
		if err := v.flashes.Put(c.Request.Context(), middleware.GetSessionID(c), *msg); err != nil {
			v.log.WithError(err).Warn("Failed to store flash message")
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// fail maps domain errors onto responses
func (v *Views) fail(c *gin.Context, err error) {
	var shortage *inventory.ShortageError

	switch {
	case errors.As(err, &shortage):
		msg := flash.Failure(shortage.Error())
		v.redirect(c, refererOr(c, productsPath), &msg)

	case errors.Is(err, cart.ErrInvalidQuantity):
		msg := flash.Failure("Quantity must be at least 1")
		v.redirect(c, refererOr(c, productsPath), &msg)

	case errors.Is(err, product.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
			"flash": v.popFlash(c),
		})

	case errors.Is(err, purchase.ErrCartNotFound):
		msg := flash.Failure("Your shopping cart is empty")
		v.redirect(c, errorPath, &msg)

	default:
		_ = c.Error(err)
		v.log.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		msg := flash.Failure("Something went wrong, please try again")
		v.redirect(c, errorPath, &msg)
	}
}

// ErrorPage handles GET /error
func (v *Views) ErrorPage(c *gin.Context) {
	v.render(c, http.StatusInternalServerError, "Something went wrong", gin.H{})
}

// money renders an amount with exactly two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// refererOr returns the same-host Referer path, or fallback
func refererOr(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || u.Path == "" {
		return fallback
	}
	return u.RequestURI()
}

