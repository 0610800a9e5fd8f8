package user

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

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo is the read side of the user table used by admin screens.
type UserRepo interface {
	List(ctx context.Context, page types.Page) ([]types.User, int, error)
	Get(ctx context.Context, id uuid.UUID) (*types.User, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresUserRepo(db database.Querier, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{logger: logger, db: db}
}

// Password hashes are never selected here.
const userColumns = "id, email, full_name, role, created_at, updated_at"

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepo) List(ctx context.Context, page types.Page) ([]types.User, int, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
	))
	defer span.End()

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return nil, 0, fmt.Errorf("database error counting users: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id LIMIT $1 OFFSET $2",
		page.Limit, page.Offset())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, 0, fmt.Errorf("database error listing users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			span.RecordError(err)
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, total, nil
}

func (r *PostgresUserRepo) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.String("user.id", id.String()),
	))
	defer span.End()

	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("%w: user not found", types.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return u, nil
}
