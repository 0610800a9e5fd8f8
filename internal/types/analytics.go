package types

import (
	"time"

	"github.com/google/uuid"
)

type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name" example:"Wireless Mouse"`
	Quantity  int       `json:"quantity" example:"17"`
	Revenue   float64   `json:"revenue" example:"509.83"`
}

type Analytics struct {
	TotalUsers      int                `json:"total_users"`
	TotalProducts   int                `json:"total_products"`
	TotalOrders     int                `json:"total_orders"`
	TotalSales      float64            `json:"total_sales"`
	RecentSales     float64            `json:"recent_sales"`
	StatusBreakdown map[string]int     `json:"status_breakdown"`
	DailySales      map[string]float64 `json:"daily_sales"`
	TopProducts     []TopProduct       `json:"top_products"`
}

// OrderSummary is the projection of an order the aggregator needs.
type OrderSummary struct {
	Items     []OrderItem
	Total     float64
	Status    OrderStatus
	CreatedAt time.Time
}
