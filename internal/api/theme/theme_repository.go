package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ ThemeRepo = (*PostgresThemeRepo)(nil)

type ThemeRepo interface {
	// Get returns types.ErrNotFound until a theme has been saved.
	Get(ctx context.Context) (*types.Theme, error)
	Upsert(ctx context.Context, t types.Theme) (*types.Theme, error)
}

type PostgresThemeRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresThemeRepo(db database.Querier, logger *slog.Logger) *PostgresThemeRepo {
	return &PostgresThemeRepo{logger: logger, db: db}
}

const themeColumns = "primary_color, secondary_color, accent_color, font_size, border_radius, updated_at"

func scanTheme(row pgx.Row) (*types.Theme, error) {
	var t types.Theme
	if err := row.Scan(&t.PrimaryColor, &t.SecondaryColor, &t.AccentColor, &t.FontSize, &t.BorderRadius, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresThemeRepo) Get(ctx context.Context) (*types.Theme, error) {
	ctx, span := otel.Tracer("ThemeRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "theme_settings"),
	))
	defer span.End()

	t, err := scanTheme(r.db.QueryRow(ctx, "SELECT "+themeColumns+" FROM theme_settings WHERE id = 1"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: theme not configured", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching theme: %w", err)
	}
	return t, nil
}

func (r *PostgresThemeRepo) Upsert(ctx context.Context, t types.Theme) (*types.Theme, error) {
	ctx, span := otel.Tracer("ThemeRepo").Start(ctx, "Upsert", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "theme_settings"),
	))
	defer span.End()

	saved, err := scanTheme(r.db.QueryRow(ctx, `
		INSERT INTO theme_settings (id, primary_color, secondary_color, accent_color, font_size, border_radius, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE
		SET primary_color = EXCLUDED.primary_color, secondary_color = EXCLUDED.secondary_color,
		    accent_color = EXCLUDED.accent_color, font_size = EXCLUDED.font_size,
		    border_radius = EXCLUDED.border_radius, updated_at = EXCLUDED.updated_at
		RETURNING `+themeColumns,
		t.PrimaryColor, t.SecondaryColor, t.AccentColor, t.FontSize, t.BorderRadius))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save theme", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPSERT failed")
		return nil, fmt.Errorf("database error saving theme: %w", err)
	}
	return saved, nil
}
