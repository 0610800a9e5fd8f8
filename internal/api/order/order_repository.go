package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ OrderRepo = (*PostgresOrderRepo)(nil)

type OrderRepo interface {
	// List returns one page of orders, newest first. A nil userID lists every order.
	List(ctx context.Context, userID *uuid.UUID, page types.Page) ([]types.Order, int, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Order, error)
	Create(ctx context.Context, o types.Order) (*types.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status types.OrderStatus) (*types.Order, error)
}

type PostgresOrderRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresOrderRepo(db database.Querier, logger *slog.Logger) *PostgresOrderRepo {
	return &PostgresOrderRepo{logger: logger, db: db}
}

const orderColumns = "id, user_id, items, total, status, shipping_address, created_at"

func scanOrder(row pgx.Row) (*types.Order, error) {
	var (
		o               types.Order
		items, shipping []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &items, &o.Total, &o.Status, &shipping, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("error decoding order items: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("error decoding shipping address: %w", err)
	}
	return &o, nil
}

func (r *PostgresOrderRepo) List(ctx context.Context, userID *uuid.UUID, page types.Page) ([]types.Order, int, error) {
	ctx, span := otel.Tracer("OrderRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "orders"),
		attribute.Bool("filter.by_user", userID != nil),
	))
	defer span.End()

	where := ""
	var args []interface{}
	if userID != nil {
		where = " WHERE user_id = $1"
		args = append(args, *userID)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return nil, 0, fmt.Errorf("database error counting orders: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM orders%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		orderColumns, where, n+1, n+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, 0, fmt.Errorf("database error listing orders: %w", err)
	}
	defer rows.Close()

	var orders []types.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			span.RecordError(err)
			return nil, 0, fmt.Errorf("error scanning order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, 0, fmt.Errorf("error iterating order rows: %w", err)
	}
	span.SetAttributes(attribute.Int("db.rows_returned", len(orders)))
	return orders, total, nil
}

func (r *PostgresOrderRepo) Get(ctx context.Context, id uuid.UUID) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "orders"),
		attribute.String("order.id", id.String()),
	))
	defer span.End()

	o, err := scanOrder(r.db.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Order not found")
			return nil, fmt.Errorf("%w: order not found", types.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("database error fetching order: %w", err)
	}
	return o, nil
}

func (r *PostgresOrderRepo) Create(ctx context.Context, o types.Order) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "orders"),
		attribute.String("user.id", o.UserID.String()),
	))
	defer span.End()

	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("error encoding order items: %w", err)
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("error encoding shipping address: %w", err)
	}

	created, err := scanOrder(r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, items, total, status, shipping_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		o.UserID, items, o.Total, o.Status, shipping))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert order", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating order: %w", err)
	}
	span.SetStatus(codes.Ok, "Order created")
	return created, nil
}

func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status types.OrderStatus) (*types.Order, error) {
	ctx, span := otel.Tracer("OrderRepo").Start(ctx, "UpdateStatus", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "orders"),
		attribute.String("order.id", id.String()),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	o, err := scanOrder(r.db.QueryRow(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2 RETURNING "+orderColumns, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Order not found")
			return nil, fmt.Errorf("%w: order not found", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating order status: %w", err)
	}
	return o, nil
}
