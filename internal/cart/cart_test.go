package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastly/storefront/internal/ordering"
)

func menuItem(id int64, price string, discount int64) ordering.MenuItem {
	return ordering.MenuItem{
		ID:                 id,
		Name:               "item",
		Price:              decimal.RequireFromString(price),
		DiscountPercentage: decimal.NewFromInt(discount),
		RestaurantID:       7,
		Available:          true,
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	var c Cart

	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 0))
	require.NoError(t, c.Add(menuItem(2, "3.00", 0), -3))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
}

func TestAddSameItemIncrements(t *testing.T) {
	var c Cart

	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 0))
	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 0))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddRejectsItemWithoutRestaurant(t *testing.T) {
	var c Cart

	item := menuItem(1, "4.50", 0)
	item.RestaurantID = 0

	err := c.Add(item, 1)
	require.ErrorIs(t, err, ErrMissingRestaurant)
	assert.Empty(t, c.Lines)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 2))
	require.NoError(t, c.Add(menuItem(2, "3.00", 0), 1))

	c.SetQuantity(1, 0)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(2), c.Lines[0].ID)

	c.SetQuantity(2, -5)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityExact(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 1))

	c.SetQuantity(1, 7)
	assert.Equal(t, 7, c.Lines[0].Quantity)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "4.50", 0), 1))

	c.Remove(99)
	assert.Len(t, c.Lines, 1)
}

func TestQuantityNeverBelowOne(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "1.00", 0), -1))
	require.NoError(t, c.Add(menuItem(2, "1.00", 0), 3))
	c.SetQuantity(2, -1)
	require.NoError(t, c.Add(menuItem(3, "1.00", 0), 0))
	c.SetQuantity(3, 4)

	for _, line := range c.Lines {
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
}

func TestTotalPriceAppliesDiscount(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "10.00", 20), 3))

	// 10.00 x 0.8 x 3
	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("24.00")),
		"got %s", c.TotalPrice())
}

func TestTotalPriceWithoutDiscount(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "5.00", 0), 2))

	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("10.00")),
		"got %s", c.TotalPrice())
}

func TestTotalItemCount(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(menuItem(1, "5.00", 0), 2))
	require.NoError(t, c.Add(menuItem(2, "3.00", 0), 3))

	assert.Equal(t, 5, c.TotalItemCount())
}

func TestRestaurantIDFromFirstLine(t *testing.T) {
	var c Cart
	assert.Zero(t, c.RestaurantID())

	item := menuItem(1, "5.00", 0)
	item.RestaurantID = 42
	require.NoError(t, c.Add(item, 1))
	assert.Equal(t, int64(42), c.RestaurantID())
}
