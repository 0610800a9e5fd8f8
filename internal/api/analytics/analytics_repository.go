package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ AnalyticsRepo = (*PostgresAnalyticsRepo)(nil)

type AnalyticsRepo interface {
	// Count returns the row count of one of the counted tables.
	Count(ctx context.Context, table string) (int, error)
	OrderSummaries(ctx context.Context) ([]types.OrderSummary, error)
}

// countQueries whitelists the tables Count may touch.
var countQueries = map[string]string{
	"users":    "SELECT COUNT(*) FROM users",
	"products": "SELECT COUNT(*) FROM products",
	"orders":   "SELECT COUNT(*) FROM orders",
}

type PostgresAnalyticsRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresAnalyticsRepo(db database.Querier, logger *slog.Logger) *PostgresAnalyticsRepo {
	return &PostgresAnalyticsRepo{logger: logger, db: db}
}

func (r *PostgresAnalyticsRepo) Count(ctx context.Context, table string) (int, error) {
	ctx, span := otel.Tracer("AnalyticsRepo").Start(ctx, "Count", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", table),
	))
	defer span.End()

	query, ok := countQueries[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return 0, fmt.Errorf("database error counting %s: %w", table, err)
	}
	return n, nil
}

func (r *PostgresAnalyticsRepo) OrderSummaries(ctx context.Context) ([]types.OrderSummary, error) {
	ctx, span := otel.Tracer("AnalyticsRepo").Start(ctx, "OrderSummaries", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "orders"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx, "SELECT items, total, status, created_at FROM orders")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error loading orders: %w", err)
	}
	defer rows.Close()

	var summaries []types.OrderSummary
	for rows.Next() {
		var (
			s     types.OrderSummary
			items []byte
		)
		if err := rows.Scan(&items, &s.Total, &s.Status, &s.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("error scanning order row: %w", err)
		}
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("error decoding order items: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	span.SetAttributes(attribute.Int("db.rows_returned", len(summaries)))
	return summaries, nil
}
