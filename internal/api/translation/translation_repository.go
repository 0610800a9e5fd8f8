package translation

import (
	"context"
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

var _ TranslationRepo = (*PostgresTranslationRepo)(nil)

type TranslationRepo interface {
	// List returns every entry, or only those tied to refID when it is non-empty.
	List(ctx context.Context, refID string) ([]types.Translation, error)
	Upsert(ctx context.Context, t types.Translation) error
}

type PostgresTranslationRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresTranslationRepo(db database.Querier, logger *slog.Logger) *PostgresTranslationRepo {
	return &PostgresTranslationRepo{logger: logger, db: db}
}

func (r *PostgresTranslationRepo) List(ctx context.Context, refID string) ([]types.Translation, error) {
	ctx, span := otel.Tracer("TranslationRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "translations"),
		attribute.String("ref_id", refID),
	))
	defer span.End()

	query := `SELECT key, en, ar, type, ref_id, updated_at FROM translations`
	var args []interface{}
	if refID != "" {
		query += ` WHERE ref_id = $1`
		args = append(args, refID)
	}
	query += ` ORDER BY key`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error listing translations: %w", err)
	}
	defer rows.Close()

	var entries []types.Translation
	for rows.Next() {
		var t types.Translation
		if err := rows.Scan(&t.Key, &t.EN, &t.AR, &t.Type, &t.RefID, &t.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("error scanning translation row: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating translation rows: %w", err)
	}
	return entries, nil
}

// Upsert replaces the entry stored under t.Key.
func (r *PostgresTranslationRepo) Upsert(ctx context.Context, t types.Translation) error {
	ctx, span := otel.Tracer("TranslationRepo").Start(ctx, "Upsert", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "translations"),
		attribute.String("translation.key", t.Key),
	))
	defer span.End()

	_, err := r.db.Exec(ctx, `
		INSERT INTO translations (key, en, ar, type, ref_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET en = EXCLUDED.en, ar = EXCLUDED.ar, type = EXCLUDED.type,
		    ref_id = EXCLUDED.ref_id, updated_at = EXCLUDED.updated_at`,
		t.Key, t.EN, t.AR, t.Type, t.RefID, t.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert translation", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPSERT failed")
		return fmt.Errorf("database error upserting translation: %w", err)
	}
	return nil
}
