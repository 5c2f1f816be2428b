package purchase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/inventory"
	"github.com/your-org/storefront/internal/domain/product"
)

func mug() product.Product {
	return product.Product{ID: 1, Name: "Mug", Price: decimal.RequireFromString("9.99"), Quantity: 5}
}

func tee() product.Product {
	return product.Product{ID: 2, Name: "Tee", Price: decimal.RequireFromString("15.50"), Quantity: 10}
}

func assertSubtotalMatchesLines(t *testing.T, p *Purchase) {
	t.Helper()
	want := decimal.Zero
	for _, pp := range p.ProductPurchases {
		want = want.Add(pp.Product.Price.Mul(decimal.NewFromInt(int64(pp.Quantity))))
	}
	assert.True(t, want.Equal(p.Subtotal()), "subtotal %s, want %s", p.Subtotal(), want)
}

func TestPurchase_AddMergesSameProduct(t *testing.T) {
	p := New("s1")

	require.NoError(t, p.Add(mug(), 2))
	require.NoError(t, p.Add(mug(), 3))

	require.Len(t, p.ProductPurchases, 1)
	assert.Equal(t, 5, p.ProductPurchases[0].Quantity)
	assertSubtotalMatchesLines(t, p)
}

func TestPurchase_AddChecksMergedTotal(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(mug(), 3))

	err := p.Add(mug(), 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inventory.ErrStockShortage))

	var shortage *inventory.ShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, "Mug", shortage.Product)
	assert.Equal(t, 6, shortage.Requested)
	assert.Equal(t, 5, shortage.Available)

	found, ok := p.Find(1)
	require.True(t, ok)
	assert.Equal(t, 3, found.Quantity)
}

func TestPurchase_AddNewLineOverStock(t *testing.T) {
	p := New("s1")
	err := p.Add(mug(), 6)
	assert.ErrorIs(t, err, inventory.ErrStockShortage)
	assert.True(t, p.IsEmpty())
}

func TestPurchase_AddKeepsInsertionOrder(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(tee(), 1))
	require.NoError(t, p.Add(mug(), 1))
	require.NoError(t, p.Add(tee(), 1))

	require.Len(t, p.ProductPurchases, 2)
	assert.Equal(t, uint(2), p.ProductPurchases[0].ProductID)
	assert.Equal(t, uint(1), p.ProductPurchases[1].ProductID)
	assert.Equal(t, 3, p.TotalQuantity())
}

func TestPurchase_SetQuantity(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(mug(), 1))
	require.NoError(t, p.Add(tee(), 2))

	matched, err := p.SetQuantity(mug(), 4)
	require.NoError(t, err)
	assert.True(t, matched)
	found, _ := p.Find(1)
	assert.Equal(t, 4, found.Quantity)

	matched, err = p.SetQuantity(mug(), 6)
	assert.True(t, matched)
	assert.ErrorIs(t, err, inventory.ErrStockShortage)
	found, _ = p.Find(1)
	assert.Equal(t, 4, found.Quantity)

	matched, err = p.SetQuantity(mug(), 0)
	require.NoError(t, err)
	assert.True(t, matched)
	_, ok := p.Find(1)
	assert.False(t, ok)
	assertSubtotalMatchesLines(t, p)
}

func TestPurchase_SetQuantityNegativeRemoves(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(mug(), 1))

	matched, err := p.SetQuantity(mug(), -2)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.True(t, p.IsEmpty())
}

func TestPurchase_SetQuantityWithoutLineIsNoop(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(tee(), 1))

	matched, err := p.SetQuantity(mug(), 100)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Len(t, p.ProductPurchases, 1)
}

func TestPurchase_RemoveIsIdempotent(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(mug(), 1))
	require.NoError(t, p.Add(tee(), 1))

	assert.True(t, p.Remove(1))
	assert.False(t, p.Remove(1))
	require.Len(t, p.ProductPurchases, 1)
	assert.Equal(t, uint(2), p.ProductPurchases[0].ProductID)
	assertSubtotalMatchesLines(t, p)
}

func TestPurchase_Clear(t *testing.T) {
	p := New("s1")
	require.NoError(t, p.Add(mug(), 2))
	require.NoError(t, p.Add(tee(), 2))

	p.Clear()
	assert.True(t, p.IsEmpty())
	assert.True(t, p.Subtotal().IsZero())
}

func TestPurchase_SubtotalIsExact(t *testing.T) {
	p := New("s1")
	cheap := product.Product{ID: 3, Name: "Sticker", Price: decimal.RequireFromString("0.10"), Quantity: 1000}

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Add(cheap, 1))
	}
	assert.Equal(t, "1.00", p.Subtotal().StringFixed(2))
	assert.True(t, p.Subtotal().Equal(decimal.NewFromInt(1)))
}

func TestPurchase_Scenario(t *testing.T) {
	p := New("s1")

	require.NoError(t, p.Add(mug(), 3))
	require.Len(t, p.ProductPurchases, 1)
	assert.Equal(t, "29.97", p.Subtotal().StringFixed(2))

	assert.ErrorIs(t, p.Add(mug(), 3), inventory.ErrStockShortage)
	found, _ := p.Find(1)
	assert.Equal(t, 3, found.Quantity)

	_, err := p.SetQuantity(mug(), 0)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
	assert.Equal(t, "0.00", p.Subtotal().StringFixed(2))
}
