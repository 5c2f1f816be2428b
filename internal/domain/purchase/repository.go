// internal/domain/purchase/repository.go
package purchase

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists purchases keyed by session
type Repository interface {
	FindBySessionID(ctx context.Context, sessionID string) (*Purchase, error)
	// FindOrCreate loads the session's purchase, inserting an empty one when absent.
	FindOrCreate(ctx context.Context, sessionID string) (*Purchase, error)
	Save(ctx context.Context, p *Purchase) (*Purchase, error)
	// WithinTx runs fn as one unit of work; an error from fn rolls back every save made through r.
	WithinTx(ctx context.Context, fn func(r Repository) error) error
}

// GormRepository stores purchases and their lines through gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed purchase repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindBySessionID loads the purchase bound to sessionID with its lines and products
func (r *GormRepository) FindBySessionID(ctx context.Context, sessionID string) (*Purchase, error) {
	var p Purchase
	err := r.db.WithContext(ctx).
		Preload("ProductPurchases", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("ProductPurchases.Product").
		Where("session_id = ?", sessionID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to retrieve purchase: %w", err)
	}
	return &p, nil
}

// FindOrCreate inserts an empty purchase unless the session already has one.
// A concurrent insert for the same session is absorbed by the unique index.
func (r *GormRepository) FindOrCreate(ctx context.Context, sessionID string) (*Purchase, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(New(sessionID)).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return r.FindBySessionID(ctx, sessionID)
}

// Save writes the purchase, upserts its lines, deletes lines no longer present
// and returns the reloaded canonical form.
func (r *GormRepository) Save(ctx context.Context, p *Purchase) (*Purchase, error) {
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	keep := make([]uint, 0, len(p.ProductPurchases))
	for i := range p.ProductPurchases {
		item := &p.ProductPurchases[i]
		item.PurchaseID = p.ID
		if err := db.Omit(clause.Associations).Save(item).Error; err != nil {
			return nil, fmt.Errorf("failed to save purchase line: %w", err)
		}
		keep = append(keep, item.ID)
	}

	stale := db.Where("purchase_id = ?", p.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&ProductPurchase{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete removed purchase lines: %w", err)
	}

	return r.FindBySessionID(ctx, p.SessionID)
}

// WithinTx runs fn inside a database transaction
func (r *GormRepository) WithinTx(ctx context.Context, fn func(r Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}
