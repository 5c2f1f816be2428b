// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product id has no catalog entry
var ErrProductNotFound = errors.New("product not found")

// Repository is the read side of the catalog store
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, offset, limit int) ([]Product, int64, error)
}

// GormRepository reads products through gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed product repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindByID loads a single product
func (r *GormRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// List returns one window of products ordered by id together with the total count
func (r *GormRepository) List(ctx context.Context, offset, limit int) ([]Product, int64, error) {
	var products []Product
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, total, nil
}
