// internal/domain/purchase/entity.go
package purchase

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/inventory"
	"github.com/your-org/storefront/internal/domain/product"
)

// ErrCartNotFound is returned when a session has no purchase yet
var ErrCartNotFound = errors.New("shopping cart not found")

// Purchase is the shopping cart of one browsing session
type Purchase struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	SessionID        string            `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ProductPurchases []ProductPurchase `gorm:"foreignKey:PurchaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product_purchases"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ProductPurchase is one line of a purchase. Quantity is always > 0 once saved.
type ProductPurchase struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	PurchaseID uint            `gorm:"not null;index" json:"purchase_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Product    product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName overrides
func (Purchase) TableName() string        { return "purchases" }
func (ProductPurchase) TableName() string { return "product_purchases" }

// New creates an empty purchase bound to a session
func New(sessionID string) *Purchase {
	return &Purchase{
		SessionID:        sessionID,
		ProductPurchases: []ProductPurchase{},
	}
}

// Find returns the line for productID
func (p *Purchase) Find(productID uint) (ProductPurchase, bool) {
	for _, pp := range p.ProductPurchases {
		if pp.ProductID == productID {
			return pp, true
		}
	}
	return ProductPurchase{}, false
}

// Add puts quantity units of prod into the cart, merging with an existing line.
// Stock is checked against the merged total. Not idempotent.
func (p *Purchase) Add(prod product.Product, quantity int) error {
	existing, found := p.Find(prod.ID)

	total := quantity
	if found {
		total += existing.Quantity
	}
	if err := checkStock(prod, total); err != nil {
		return err
	}

	if !found {
		p.ProductPurchases = append(p.ProductPurchases, ProductPurchase{
			PurchaseID: p.ID,
			ProductID:  prod.ID,
			Product:    prod,
			Quantity:   quantity,
		})
		return nil
	}

	p.ProductPurchases = p.rebuild(prod.ID, func(pp ProductPurchase) (ProductPurchase, bool) {
		pp.Quantity = total
		pp.Product = prod
		return pp, true
	})
	return nil
}

// SetQuantity replaces the quantity of prod's line. Zero or less removes the line.
// A positive quantity is checked against stock even when it is a decrease.
// It reports whether a matching line existed.
func (p *Purchase) SetQuantity(prod product.Product, quantity int) (bool, error) {
	if _, found := p.Find(prod.ID); !found {
		return false, nil
	}
	if quantity <= 0 {
		return p.Remove(prod.ID), nil
	}
	if err := checkStock(prod, quantity); err != nil {
		return true, err
	}

	p.ProductPurchases = p.rebuild(prod.ID, func(pp ProductPurchase) (ProductPurchase, bool) {
		pp.Quantity = quantity
		pp.Product = prod
		return pp, true
	})
	return true, nil
}

// Remove drops the line for productID and reports whether one existed
func (p *Purchase) Remove(productID uint) bool {
	if _, found := p.Find(productID); !found {
		return false
	}
	p.ProductPurchases = p.rebuild(productID, func(pp ProductPurchase) (ProductPurchase, bool) {
		return pp, false
	})
	return true
}

// Clear removes every line
func (p *Purchase) Clear() {
	p.ProductPurchases = []ProductPurchase{}
}

// IsEmpty reports whether the cart has no lines
func (p *Purchase) IsEmpty() bool {
	return len(p.ProductPurchases) == 0
}

// Subtotal is the sum of price * quantity over all lines
func (p *Purchase) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, pp := range p.ProductPurchases {
		subtotal = subtotal.Add(pp.Product.Price.Mul(decimal.NewFromInt(int64(pp.Quantity))))
	}
	return subtotal
}

// TotalQuantity is the number of units across all lines
func (p *Purchase) TotalQuantity() int {
	total := 0
	for _, pp := range p.ProductPurchases {
		total += pp.Quantity
	}
	return total
}

// rebuild returns a new slice where the line for productID is passed through fn;
// fn returning false drops the line.
func (p *Purchase) rebuild(productID uint, fn func(ProductPurchase) (ProductPurchase, bool)) []ProductPurchase {
	items := make([]ProductPurchase, 0, len(p.ProductPurchases))
	for _, pp := range p.ProductPurchases {
		if pp.ProductID == productID {
			var keep bool
			if pp, keep = fn(pp); !keep {
				continue
			}
		}
		items = append(items, pp)
	}
	return items
}

func checkStock(prod product.Product, requested int) error {
	if err := inventory.CheckSufficient(requested, prod.Quantity); err != nil {
		var shortage *inventory.ShortageError
		if errors.As(err, &shortage) {
			shortage.Product = prod.Name
		}
		return err
	}
	return nil
}
