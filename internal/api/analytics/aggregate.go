package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

const (
	recentWindow = 7 * 24 * time.Hour
	dailyDays    = 30
	topProductsN = 5
	dayKeyLayout = "2006-01-02"
)

// Aggregate folds order summaries into the dashboard figures. Cancelled orders
// count towards the status breakdown only. Days are UTC calendar days ending at now.
func Aggregate(orders []types.OrderSummary, now time.Time) types.Analytics {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	firstDay := today.AddDate(0, 0, -(dailyDays - 1))

	out := types.Analytics{
		StatusBreakdown: make(map[string]int),
		DailySales:      make(map[string]float64, dailyDays),
		TopProducts:     []types.TopProduct{},
	}
	for d := 0; d < dailyDays; d++ {
		out.DailySales[firstDay.AddDate(0, 0, d).Format(dayKeyLayout)] = 0
	}

	byProduct := make(map[uuid.UUID]*types.TopProduct)
	for _, o := range orders {
		out.StatusBreakdown[string(o.Status)]++
		if o.Status == types.OrderCancelled {
			continue
		}

		out.TotalSales += o.Total
		created := o.CreatedAt.UTC()
		if !created.After(now) && now.Sub(created) <= recentWindow {
			out.RecentSales += o.Total
		}
		if !created.Before(firstDay) && !created.After(now) {
			out.DailySales[created.Format(dayKeyLayout)] += o.Total
		}

		for _, item := range o.Items {
			tp, ok := byProduct[item.ProductID]
			if !ok {
				tp = &types.TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = tp
			}
			tp.Quantity += item.Quantity
			tp.Revenue += float64(item.Quantity) * item.Price
		}
	}

	for _, tp := range byProduct {
		out.TopProducts = append(out.TopProducts, *tp)
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		a, b := out.TopProducts[i], out.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.ProductID.String() < b.ProductID.String()
	})
	if len(out.TopProducts) > topProductsN {
		out.TopProducts = out.TopProducts[:topProductsN]
	}
	return out
}
