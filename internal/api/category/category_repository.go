package category

import (
	"context"
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

var _ CategoryRepo = (*PostgresCategoryRepo)(nil)

type CategoryRepo interface {
	List(ctx context.Context, page types.Page) ([]types.Category, int, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Category, error)
	Create(ctx context.Context, input types.CategoryInput) (*types.Category, error)
	Update(ctx context.Context, id uuid.UUID, input types.CategoryInput) (*types.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCategoryRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresCategoryRepo(db database.Querier, logger *slog.Logger) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{logger: logger, db: db}
}

func (r *PostgresCategoryRepo) List(ctx context.Context, page types.Page) ([]types.Category, int, error) {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "categories"),
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
	))
	defer span.End()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return nil, 0, fmt.Errorf("database error counting categories: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_at FROM categories
		ORDER BY name ASC, created_at ASC
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, 0, fmt.Errorf("database error listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]types.Category, 0, page.Limit)
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, 0, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, 0, fmt.Errorf("error iterating category rows: %w", err)
	}

	span.SetStatus(codes.Ok, "Categories listed")
	return categories, total, nil
}

func (r *PostgresCategoryRepo) Get(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "categories"),
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	var c types.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Category not found")
			return nil, fmt.Errorf("%w: category not found", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching category: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Create(ctx context.Context, input types.CategoryInput) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "categories"),
	))
	defer span.End()

	var c types.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description) VALUES ($1, $2)
		RETURNING id, name, description, created_at`, input.Name, input.Description).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert category", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating category: %w", err)
	}
	span.SetStatus(codes.Ok, "Category created")
	return &c, nil
}

func (r *PostgresCategoryRepo) Update(ctx context.Context, id uuid.UUID, input types.CategoryInput) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "categories"),
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	var c types.Category
	err := r.db.QueryRow(ctx, `
		UPDATE categories SET name = $1, description = $2 WHERE id = $3
		RETURNING id, name, description, created_at`, input.Name, input.Description, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Category not found")
			return nil, fmt.Errorf("%w: category not found", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating category: %w", err)
	}
	span.SetStatus(codes.Ok, "Category updated")
	return &c, nil
}

func (r *PostgresCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "Delete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "categories"),
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Category not found")
		return fmt.Errorf("%w: category not found", types.ErrNotFound)
	}
	span.SetStatus(codes.Ok, "Category deleted")
	return nil
}
