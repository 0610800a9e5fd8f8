package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func item(id uuid.UUID, name string, qty int, price float64) types.OrderItem {
	return types.OrderItem{ProductID: id, ProductName: name, Quantity: qty, Price: price}
}

func TestAggregate_Empty(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	got := Aggregate(nil, now)

	assert.Zero(t, got.TotalSales)
	assert.Zero(t, got.RecentSales)
	assert.Empty(t, got.StatusBreakdown)
	assert.NotNil(t, got.TopProducts)
	assert.Empty(t, got.TopProducts)
	require.Len(t, got.DailySales, 30)
	assert.Contains(t, got.DailySales, "2024-06-15")
	assert.Contains(t, got.DailySales, "2024-05-17")
	assert.NotContains(t, got.DailySales, "2024-05-16")
}

func TestAggregate_Totals(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	mouse, keyboard := uuid.New(), uuid.New()

	orders := []types.OrderSummary{
		{Total: 100, Status: types.OrderDelivered, CreatedAt: now.Add(-2 * time.Hour),
			Items: []types.OrderItem{item(mouse, "Mouse", 2, 25), item(keyboard, "Keyboard", 1, 50)}},
		{Total: 40, Status: types.OrderPending, CreatedAt: now.AddDate(0, 0, -10),
			Items: []types.OrderItem{item(mouse, "Mouse", 1, 40)}},
		{Total: 500, Status: types.OrderCancelled, CreatedAt: now.Add(-time.Hour),
			Items: []types.OrderItem{item(keyboard, "Keyboard", 10, 50)}},
		{Total: 7, Status: types.OrderShipped, CreatedAt: now.AddDate(0, -3, 0)},
	}
	got := Aggregate(orders, now)

	assert.InDelta(t, 147.0, got.TotalSales, 1e-9)
	assert.InDelta(t, 100.0, got.RecentSales, 1e-9)
	assert.Equal(t, map[string]int{"delivered": 1, "pending": 1, "cancelled": 1, "shipped": 1}, got.StatusBreakdown)

	assert.InDelta(t, 100.0, got.DailySales["2024-06-15"], 1e-9)
	assert.InDelta(t, 40.0, got.DailySales["2024-06-05"], 1e-9)
	assert.Len(t, got.DailySales, 30)

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, mouse, got.TopProducts[0].ProductID)
	assert.Equal(t, 3, got.TopProducts[0].Quantity)
	assert.InDelta(t, 90.0, got.TopProducts[0].Revenue, 1e-9)
	assert.Equal(t, keyboard, got.TopProducts[1].ProductID)
	assert.Equal(t, 1, got.TopProducts[1].Quantity)
}

func TestAggregate_RecentWindowBoundary(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	orders := []types.OrderSummary{
		{Total: 1, Status: types.OrderPending, CreatedAt: now.Add(-7 * 24 * time.Hour)},
		{Total: 2, Status: types.OrderPending, CreatedAt: now.Add(-7*24*time.Hour - time.Second)},
		{Total: 4, Status: types.OrderPending, CreatedAt: now.Add(time.Hour)},
	}
	got := Aggregate(orders, now)
	assert.InDelta(t, 1.0, got.RecentSales, 1e-9)
	assert.InDelta(t, 7.0, got.TotalSales, 1e-9)
}

func TestAggregate_TopProductsLimitAndOrder(t *testing.T) {
	now := time.Now()
	var items []types.OrderItem
	ids := make([]uuid.UUID, 7)
	for i := range ids {
		ids[i] = uuid.New()
		items = append(items, item(ids[i], "P", i+1, 1))
	}
	// Same quantity as ids[6], higher revenue.
	rich := uuid.New()
	items = append(items, item(rich, "Rich", 7, 100))

	got := Aggregate([]types.OrderSummary{{Status: types.OrderDelivered, CreatedAt: now, Items: items}}, now)

	require.Len(t, got.TopProducts, 5)
	assert.Equal(t, rich, got.TopProducts[0].ProductID)
	assert.Equal(t, ids[6], got.TopProducts[1].ProductID)
	assert.Equal(t, ids[5], got.TopProducts[2].ProductID)
	assert.Equal(t, 4, got.TopProducts[4].Quantity)
}
