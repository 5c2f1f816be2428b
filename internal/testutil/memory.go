// Package testutil holds in-memory stand-ins for the gorm repositories.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
)

// ProductRepository is an in-memory product.Repository
type ProductRepository struct {
	mu       sync.Mutex
	products map[uint]product.Product
}

// NewProductRepository seeds a repository with products
func NewProductRepository(products ...product.Product) *ProductRepository {
	r := &ProductRepository{products: map[uint]product.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

// Put adds or replaces a product
func (r *ProductRepository) Put(p product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *ProductRepository) FindByID(_ context.Context, id uint) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) List(_ context.Context, offset, limit int) ([]product.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return []product.Product{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// PurchaseRepository is an in-memory purchase.Repository with rollback on failed transactions
type PurchaseRepository struct {
	mu         sync.Mutex
	purchases  map[string]purchase.Purchase
	nextID     uint
	nextLineID uint

	// SaveErr, when set, is returned by every Save
	SaveErr error
	// Saves counts successful saves
	Saves int
}

// NewPurchaseRepository creates an empty repository
func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{purchases: map[string]purchase.Purchase{}}
}

func (r *PurchaseRepository) FindBySessionID(_ context.Context, sessionID string) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[sessionID]
	if !ok {
		return nil, purchase.ErrCartNotFound
	}
	return clonePurchase(p), nil
}

func (r *PurchaseRepository) FindOrCreate(_ context.Context, sessionID string) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.purchases[sessionID]; ok {
		return clonePurchase(p), nil
	}

	r.nextID++
	p := purchase.New(sessionID)
	p.ID = r.nextID
	r.purchases[sessionID] = *clonePurchase(*p)
	return p, nil
}

func (r *PurchaseRepository) Save(_ context.Context, p *purchase.Purchase) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return nil, r.SaveErr
	}
	if p.SessionID == "" {
		return nil, errors.New("purchase without session")
	}

	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	for i := range p.ProductPurchases {
		p.ProductPurchases[i].PurchaseID = p.ID
		if p.ProductPurchases[i].ID == 0 {
			r.nextLineID++
			p.ProductPurchases[i].ID = r.nextLineID
		}
	}

	r.purchases[p.SessionID] = *clonePurchase(*p)
	r.Saves++
	return clonePurchase(*p), nil
}

// WithinTx restores the previous state when fn fails
func (r *PurchaseRepository) WithinTx(_ context.Context, fn func(repo purchase.Repository) error) error {
	r.mu.Lock()
	snapshot := make(map[string]purchase.Purchase, len(r.purchases))
	for k, v := range r.purchases {
		snapshot[k] = *clonePurchase(v)
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.purchases = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

// Stored returns the persisted purchase for a session without going through a transaction
func (r *PurchaseRepository) Stored(sessionID string) (*purchase.Purchase, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[sessionID]
	if !ok {
		return nil, false
	}
	return clonePurchase(p), true
}

func clonePurchase(p purchase.Purchase) *purchase.Purchase {
	lines := make([]purchase.ProductPurchase, len(p.ProductPurchases))
	copy(lines, p.ProductPurchases)
	p.ProductPurchases = lines
	return &p
}
