// internal/domain/product/service.go
package product

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Service handles product catalog lookups
type Service struct {
	repo Repository
	log  *logrus.Logger
}

// NewService creates a new product service
func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Page is one page of the catalog listing
type Page struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information. Page is 1-based for display.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// PageIndex converts the external 1-based page parameter into a zero-based index.
// Missing, malformed and non-positive values select the first page.
func PageIndex(param string) int {
	page, err := strconv.Atoi(param)
	if err != nil || page < 1 {
		return 0
	}
	return page - 1
}

// FindByID retrieves a single product
func (s *Service) FindByID(ctx context.Context, id uint) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("product_id", id).Debug("Product lookup failed")
		return nil, err
	}
	return product, nil
}

// List retrieves the zero-based page pageIndex of size pageSize
func (s *Service) List(ctx context.Context, pageIndex, pageSize int) (*Page, error) {
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageSize <= 0 {
		pageSize = 1
	}

	products, total, err := s.repo.List(ctx, pageIndex*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	page := pageIndex + 1

	return &Page{
		Products: products,
		Pagination: Pagination{
			Page:       page,
			Limit:      pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
