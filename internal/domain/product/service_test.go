package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/pkg/logger"
)

type RepositoryMock struct{ mock.Mock }

func (m *RepositoryMock) FindByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*Product)
	return p, args.Error(1)
}

func (m *RepositoryMock) List(ctx context.Context, offset, limit int) ([]Product, int64, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func TestPageIndex(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"abc": 0,
		"-3":  0,
		"0":   0,
		"1":   0,
		"2":   1,
		"10":  9,
	}
	for param, want := range tests {
		assert.Equal(t, want, PageIndex(param), "page=%q", param)
	}
}

func TestService_FindByID(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewService(repo, logger.Discard())

	mug := &Product{ID: 1, Name: "Mug", Price: decimal.RequireFromString("9.99"), Quantity: 5}
	repo.On("FindByID", mock.Anything, uint(1)).Return(mug, nil)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, ErrProductNotFound)

	got, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)

	_, err = svc.FindByID(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	repo.AssertExpectations(t)
}

func TestService_List_Pagination(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewService(repo, logger.Discard())

	items := []Product{{ID: 6}, {ID: 7}, {ID: 8}, {ID: 9}, {ID: 10}}
	repo.On("List", mock.Anything, 5, 5).Return(items, int64(12), nil)

	page, err := svc.List(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Len(t, page.Products, 5)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	repo.AssertExpectations(t)
}

func TestService_List_ClampsNegativeIndexAndEmptyResult(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewService(repo, logger.Discard())

	repo.On("List", mock.Anything, 0, 5).Return(nil, int64(0), nil)

	page, err := svc.List(context.Background(), -4, 5)
	require.NoError(t, err)

	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.False(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewService(repo, logger.Discard())

	repo.On("List", mock.Anything, 0, 5).Return(nil, int64(0), errors.New("db down"))

	_, err := svc.List(context.Background(), 0, 5)
	assert.EqualError(t, err, "db down")
}
