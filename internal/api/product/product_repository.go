package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

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

var _ ProductRepo = (*PostgresProductRepo)(nil)

type ProductRepo interface {
	// List returns one page of products matching filter, newest first, plus the total match count.
	List(ctx context.Context, filter types.ProductFilter, page types.Page) ([]types.Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Product, error)
	Create(ctx context.Context, input types.ProductInput) (*types.Product, error)
	Update(ctx context.Context, id uuid.UUID, input types.ProductInput) (*types.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresProductRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresProductRepo(db database.Querier, logger *slog.Logger) *PostgresProductRepo {
	return &PostgresProductRepo{logger: logger, db: db}
}

const productColumns = `id, name, description, price, category_id, image_url, stock, created_at`

func scanProduct(row pgx.Row) (*types.Product, error) {
	var p types.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.ImageURL, &p.Stock, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildProductFilter renders the WHERE clause for filter. A search term matches the
// product's own name and description, or any product translation in either language.
func buildProductFilter(filter types.ProductFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	argID := 1

	if filter.CategoryID != nil {
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", argID))
		args = append(args, *filter.CategoryID)
		argID++
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses, fmt.Sprintf(`(
			p.name ILIKE $%[1]d OR p.description ILIKE $%[1]d
			OR p.id::text IN (
				SELECT t.ref_id FROM translations t
				WHERE t.type = 'product' AND t.ref_id IS NOT NULL
				  AND (t.en ILIKE $%[1]d OR t.ar ILIKE $%[1]d)
			))`, argID))
		args = append(args, "%"+escapeLike(search)+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PostgresProductRepo) List(ctx context.Context, filter types.ProductFilter, page types.Page) ([]types.Product, int, error) {
	ctx, span := otel.Tracer("ProductRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "products"),
		attribute.Bool("filter.search", filter.Search != ""),
		attribute.Bool("filter.category", filter.CategoryID != nil),
	))
	defer span.End()

	where, args := buildProductFilter(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return nil, 0, fmt.Errorf("database error counting products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products p%s ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`,
		prefixed("p.", productColumns), where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, 0, fmt.Errorf("database error listing products: %w", err)
	}
	defer rows.Close()

	products := make([]types.Product, 0, page.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			span.RecordError(err)
			return nil, 0, fmt.Errorf("error scanning product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, 0, fmt.Errorf("error iterating product rows: %w", err)
	}

	span.SetAttributes(attribute.Int("result.total", total))
	span.SetStatus(codes.Ok, "Products listed")
	return products, total, nil
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, c := range parts {
		parts[i] = prefix + c
	}
	return strings.Join(parts, ", ")
}

func (r *PostgresProductRepo) Get(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "products"),
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Product not found")
			return nil, fmt.Errorf("%w: product not found", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepo) Create(ctx context.Context, input types.ProductInput) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "products"),
	))
	defer span.End()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category_id, image_url, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		input.Name, input.Description, input.Price, input.CategoryID, input.ImageURL, input.Stock))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert product", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating product: %w", err)
	}
	span.SetStatus(codes.Ok, "Product created")
	return p, nil
}

func (r *PostgresProductRepo) Update(ctx context.Context, id uuid.UUID, input types.ProductInput) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "products"),
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, category_id = $4, image_url = $5, stock = $6
		WHERE id = $7
		RETURNING `+productColumns,
		input.Name, input.Description, input.Price, input.CategoryID, input.ImageURL, input.Stock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Product not found")
			return nil, fmt.Errorf("%w: product not found", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating product: %w", err)
	}
	span.SetStatus(codes.Ok, "Product updated")
	return p, nil
}

func (r *PostgresProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("ProductRepo").Start(ctx, "Delete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "products"),
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product not found", types.ErrNotFound)
	}
	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}
