package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ AnalyticsService = (*AnalyticsServiceImpl)(nil)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*types.Analytics, error)
}

type AnalyticsServiceImpl struct {
	logger *slog.Logger
	repo   AnalyticsRepo
	now    func() time.Time
}

func NewAnalyticsService(repo AnalyticsRepo, logger *slog.Logger) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{logger: logger, repo: repo, now: time.Now}
}

func (s *AnalyticsServiceImpl) GetAnalytics(ctx context.Context) (*types.Analytics, error) {
	ctx, span := otel.Tracer("AnalyticsService").Start(ctx, "GetAnalytics")
	defer span.End()

	var (
		users, products, orders int
		summaries               []types.OrderSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.repo.Count(gctx, "users")
		return err
	})
	g.Go(func() (err error) {
		products, err = s.repo.Count(gctx, "products")
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.repo.Count(gctx, "orders")
		return err
	})
	g.Go(func() (err error) {
		summaries, err = s.repo.OrderSummaries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to gather analytics")
		return nil, fmt.Errorf("error gathering analytics: %w", err)
	}

	result := Aggregate(summaries, s.now())
	result.TotalUsers = users
	result.TotalProducts = products
	result.TotalOrders = orders

	span.SetAttributes(
		attribute.Int("analytics.orders", orders),
		attribute.Float64("analytics.total_sales", result.TotalSales),
	)
	span.SetStatus(codes.Ok, "Analytics computed")
	return &result, nil
}
