package product_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/testutil"
)

func newSeededRepository(t *testing.T, n int) *product.GormRepository {
	db := testutil.NewSQLiteDB(t)

	for i := 1; i <= n; i++ {
		p := product.Product{
			Name:     fmt.Sprintf("Item %d", i),
			Price:    decimal.RequireFromString("12.50"),
			Quantity: i,
		}
		require.NoError(t, db.Create(&p).Error)
	}
	return product.NewGormRepository(db)
}

func TestGormRepository_FindByID(t *testing.T) {
	repo := newSeededRepository(t, 2)
	ctx := context.Background()

	p, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Item 2", p.Name)
	assert.Equal(t, "12.50", p.Price.StringFixed(2))
	assert.Equal(t, 2, p.Quantity)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestGormRepository_List(t *testing.T) {
	repo := newSeededRepository(t, 7)
	ctx := context.Background()

	products, total, err := repo.List(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, products, 5)
	for i, p := range products {
		assert.Equal(t, uint(i+1), p.ID)
	}

	products, total, err = repo.List(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, products, 2)
	assert.Equal(t, uint(6), products[0].ID)

	products, _, err = repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, products)
}
