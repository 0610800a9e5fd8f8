package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ OrderService = (*OrderServiceImpl)(nil)

type OrderService interface {
	ListOrders(ctx context.Context, actor *types.User, page types.Page) (types.PaginatedResponse[types.Order], error)
	GetOrder(ctx context.Context, actor *types.User, id uuid.UUID) (*types.Order, error)
	CreateOrder(ctx context.Context, actor *types.User, req types.CreateOrderRequest) (*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status types.OrderStatus) (*types.Order, error)
}

type OrderServiceImpl struct {
	logger *slog.Logger
	repo   OrderRepo
}

func NewOrderService(repo OrderRepo, logger *slog.Logger) *OrderServiceImpl {
	return &OrderServiceImpl{logger: logger, repo: repo}
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, actor *types.User, page types.Page) (types.PaginatedResponse[types.Order], error) {
	ctx, span := otel.Tracer("OrderService").Start(ctx, "ListOrders", trace.WithAttributes(
		attribute.String("actor.id", actor.ID.String()),
		attribute.Bool("actor.admin", actor.IsAdmin()),
	))
	defer span.End()

	var owner *uuid.UUID
	if !actor.IsAdmin() {
		owner = &actor.ID
	}
	orders, total, err := s.repo.List(ctx, owner, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list orders")
		return types.PaginatedResponse[types.Order]{}, fmt.Errorf("error listing orders: %w", err)
	}
	return types.NewPaginatedResponse(orders, page, total), nil
}

// GetOrder returns the order if actor owns it or is an admin.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, actor *types.User, id uuid.UUID) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderService").Start(ctx, "GetOrder", trace.WithAttributes(
		attribute.String("order.id", id.String()),
	))
	defer span.End()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching order: %w", err)
	}
	if !actor.IsAdmin() && o.UserID != actor.ID {
		span.SetStatus(codes.Error, "Cross-user access")
		return nil, fmt.Errorf("%w: access denied", types.ErrForbidden)
	}
	return o, nil
}

func (s *OrderServiceImpl) CreateOrder(ctx context.Context, actor *types.User, req types.CreateOrderRequest) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderService").Start(ctx, "CreateOrder", trace.WithAttributes(
		attribute.String("actor.id", actor.ID.String()),
		attribute.Int("order.items", len(req.Items)),
	))
	defer span.End()

	addr := req.ShippingAddress
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = types.DefaultCountry
	}

	o, err := s.repo.Create(ctx, types.Order{
		UserID:          actor.ID,
		Items:           req.Items,
		Total:           req.Total,
		Status:          types.OrderPending,
		ShippingAddress: addr,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create order")
		return nil, fmt.Errorf("error creating order: %w", err)
	}
	s.logger.InfoContext(ctx, "Order placed",
		slog.String("order_id", o.ID.String()),
		slog.String("user_id", actor.ID.String()),
		slog.Float64("total", o.Total))
	span.SetStatus(codes.Ok, "Order created")
	return o, nil
}

func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status types.OrderStatus) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderService").Start(ctx, "UpdateOrderStatus", trace.WithAttributes(
		attribute.String("order.id", id.String()),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid order status %q", types.ErrValidation, status)
	}
	o, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error updating order status: %w", err)
	}
	return o, nil
}
