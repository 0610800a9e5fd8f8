package partner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ PartnerRepo = (*PostgresPartnerRepo)(nil)

type PartnerRepo interface {
	List(ctx context.Context) ([]types.Partner, error)
	Create(ctx context.Context, input types.PartnerInput) (*types.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresPartnerRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresPartnerRepo(db database.Querier, logger *slog.Logger) *PostgresPartnerRepo {
	return &PostgresPartnerRepo{logger: logger, db: db}
}

func (r *PostgresPartnerRepo) List(ctx context.Context) ([]types.Partner, error) {
	ctx, span := otel.Tracer("PartnerRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "partners"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx, "SELECT id, name, logo_url, created_at FROM partners ORDER BY created_at DESC, id")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error listing partners: %w", err)
	}
	defer rows.Close()

	partners := []types.Partner{}
	for rows.Next() {
		var p types.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("error scanning partner row: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

func (r *PostgresPartnerRepo) Create(ctx context.Context, input types.PartnerInput) (*types.Partner, error) {
	ctx, span := otel.Tracer("PartnerRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "partners"),
	))
	defer span.End()

	var p types.Partner
	err := r.db.QueryRow(ctx,
		"INSERT INTO partners (name, logo_url) VALUES ($1, $2) RETURNING id, name, logo_url, created_at",
		input.Name, input.LogoURL).Scan(&p.ID, &p.Name, &p.LogoURL, &p.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert partner", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating partner: %w", err)
	}
	return &p, nil
}

func (r *PostgresPartnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("PartnerRepo").Start(ctx, "Delete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "partners"),
		attribute.String("partner.id", id.String()),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, "DELETE FROM partners WHERE id = $1", id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: partner not found", types.ErrNotFound)
	}
	return nil
}
