// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
)

// ErrInvalidQuantity is returned when an add request asks for zero or fewer units
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Catalog looks products up by id
type Catalog interface {
	FindByID(ctx context.Context, id uint) (*product.Product, error)
}

// Outcome describes the result of a cart mutation
type Outcome struct {
	Purchase *purchase.Purchase
	// Message is the status line shown to the shopper; empty when nothing matched.
	Message string
	// Empty is set when the cart has no lines left after the mutation.
	Empty bool
}

// Service handles shopping cart business logic
type Service struct {
	catalog   Catalog
	purchases purchase.Repository
	log       *logrus.Logger
}

// NewService creates a new cart service
func NewService(catalog Catalog, purchases purchase.Repository, log *logrus.Logger) *Service {
	return &Service{
		catalog:   catalog,
		purchases: purchases,
		log:       log,
	}
}

// View returns the session's purchase or purchase.ErrCartNotFound
func (s *Service) View(ctx context.Context, sessionID string) (*purchase.Purchase, error) {
	p, err := s.purchases.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, purchase.ErrCartNotFound) {
			s.log.WithField("session_id", sessionID).Error("No purchases found for session")
		}
		return nil, err
	}

	for _, pp := range p.ProductPurchases {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"product":    pp.Product.Name,
			"quantity":   pp.Quantity,
		}).Debug("Cart line")
	}
	return p, nil
}

// Peek returns the session's purchase, or nil when there is none yet
func (s *Service) Peek(ctx context.Context, sessionID string) (*purchase.Purchase, error) {
	p, err := s.purchases.FindBySessionID(ctx, sessionID)
	if errors.Is(err, purchase.ErrCartNotFound) {
		return nil, nil
	}
	return p, err
}

// AddItem adds quantity units of a product, creating the cart on first use
func (s *Service) AddItem(ctx context.Context, sessionID string, productID uint, quantity int) (*Outcome, error) {
	prod, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			s.log.WithField("product_id", productID).Error("Attempt to add unknown product")
		}
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.log.WithFields(logrus.Fields{"session_id": sessionID, "product_id": prod.ID}).Debug("Adding product")

	outcome := &Outcome{}
	err = s.withPurchase(ctx, sessionID, true, func(p *purchase.Purchase) error {
		return p.Add(*prod, quantity)
	}, outcome)
	if err != nil {
		return nil, err
	}

	outcome.Message = fmt.Sprintf("'%s' was successfully added to cart!", prod.Name)
	s.log.WithFields(logrus.Fields{"quantity": quantity, "product": prod.Name}).Debug("Added product to cart")
	return outcome, nil
}

// UpdateItem sets the quantity of a product's line; zero or less removes it.
// A product that is not in the cart leaves the cart untouched. The cart must
// exist before the product is looked up.
func (s *Service) UpdateItem(ctx context.Context, sessionID string, productID uint, newQuantity int) (*Outcome, error) {
	s.log.WithFields(logrus.Fields{"product_id": productID, "quantity": newQuantity}).Debug("Updating product")

	var prod *product.Product
	var matched bool
	outcome := &Outcome{}
	err := s.withPurchase(ctx, sessionID, false, func(p *purchase.Purchase) error {
		var err error
		if prod, err = s.lookup(ctx, productID, "update"); err != nil {
			return err
		}
		matched, err = p.SetQuantity(*prod, newQuantity)
		return err
	}, outcome)
	if err != nil {
		return nil, err
	}

	if matched {
		outcome.Message = fmt.Sprintf("Updated '%s' quantity in cart to %d!", prod.Name, newQuantity)
		if newQuantity > 0 {
			s.log.WithField("product", prod.Name).Debugf("Updated to %d", newQuantity)
		} else {
			s.log.WithField("product", prod.Name).Debugf("Removed because quantity was set to %d", newQuantity)
		}
	}
	return outcome, nil
}

// RemoveItem drops a product's line; removing an absent product is not an error
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*Outcome, error) {
	s.log.WithField("product_id", productID).Debug("Removing product")

	var prod *product.Product
	var removed bool
	outcome := &Outcome{}
	err := s.withPurchase(ctx, sessionID, false, func(p *purchase.Purchase) error {
		var err error
		if prod, err = s.lookup(ctx, productID, "remove"); err != nil {
			return err
		}
		removed = p.Remove(prod.ID)
		return nil
	}, outcome)
	if err != nil {
		return nil, err
	}

	if removed {
		outcome.Message = fmt.Sprintf("Removed '%s' from cart!", prod.Name)
		s.log.WithField("product", prod.Name).Debug("Removed product from cart")
	}
	return outcome, nil
}

func (s *Service) lookup(ctx context.Context, productID uint, action string) (*product.Product, error) {
	prod, err := s.catalog.FindByID(ctx, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		s.log.WithField("product_id", productID).Errorf("Attempt to %s non-existent product", action)
	}
	return prod, err
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, sessionID string) (*Outcome, error) {
	s.log.WithField("session_id", sessionID).Debug("Emptying cart")

	outcome := &Outcome{}
	err := s.withPurchase(ctx, sessionID, false, func(p *purchase.Purchase) error {
		p.Clear()
		return nil
	}, outcome)
	if err != nil {
		return nil, err
	}

	outcome.Message = "Cart is empty!"
	return outcome, nil
}

// withPurchase loads the session's purchase, applies mutate and saves the result
// in one transaction. With create set a missing purchase is inserted first,
// otherwise purchase.ErrCartNotFound is returned. Nothing is saved when mutate fails.
func (s *Service) withPurchase(ctx context.Context, sessionID string, create bool, mutate func(*purchase.Purchase) error, outcome *Outcome) error {
	return s.purchases.WithinTx(ctx, func(repo purchase.Repository) error {
		var p *purchase.Purchase
		var err error
		if create {
			p, err = repo.FindOrCreate(ctx, sessionID)
		} else {
			p, err = repo.FindBySessionID(ctx, sessionID)
		}
		switch {
		case errors.Is(err, purchase.ErrCartNotFound):
			s.log.WithField("session_id", sessionID).Error("Unable to find shopping cart for update")
			return err
		case err != nil:
			return err
		}

		if err := mutate(p); err != nil {
			return err
		}

		saved, err := repo.Save(ctx, p)
		if err != nil {
			return err
		}

		outcome.Purchase = saved
		outcome.Empty = saved.IsEmpty()
		return nil
	})
}
