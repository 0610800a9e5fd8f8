package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

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

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store. It exclusively owns user records.
type AuthRepo interface {
	// CreateUser fails with types.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, email, fullName, passwordHash string, role types.UserRole) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update types.UserUpdate) (*types.User, error)

	UpsertPasswordReset(ctx context.Context, email, token string) error
	ConsumePasswordReset(ctx context.Context, email, token string) error
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresAuthRepo(db database.Querier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

const userColumns = `id, email, full_name, role, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, email, fullName, passwordHash string, role types.UserRole) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUser"))

	query := `
		INSERT INTO users (email, full_name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, email, fullName, role, passwordHash))
	if err != nil {
		if database.IsUniqueViolation(err) {
			l.WarnContext(ctx, "Email already registered")
			span.SetStatus(codes.Error, "Duplicate email")
			return nil, fmt.Errorf("%w: email already registered", types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	span.SetAttributes(attribute.String("db.user.id", user.ID.String()))
	span.SetStatus(codes.Ok, "User created")
	return user, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("%w: user not found", types.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to query user by email", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", id.String()),
	))
	defer span.End()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("%w: user not found", types.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to query user by id", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of update and returns the stored row.
func (r *PostgresAuthRepo) UpdateUser(ctx context.Context, id uuid.UUID, update types.UserUpdate) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "UpdateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", id.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateUser"), slog.String("userID", id.String()))

	if update.Empty() {
		return r.GetUserByID(ctx, id)
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if update.FullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("full_name = $%d", argID))
		args = append(args, *update.FullName)
		argID++
	}
	if update.PasswordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argID))
		args = append(args, *update.PasswordHash)
		argID++
		span.SetAttributes(attribute.Bool("update.password", true))
	}
	if update.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argID))
		args = append(args, *update.Role)
		argID++
		span.SetAttributes(attribute.Bool("update.role", true))
	}
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now().UTC())
	argID++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("%w: user not found", types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating user: %w", err)
	}

	span.SetStatus(codes.Ok, "User updated")
	return user, nil
}

// UpsertPasswordReset keeps a single active token per email.
func (r *PostgresAuthRepo) UpsertPasswordReset(ctx context.Context, email, token string) error {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "UpsertPasswordReset", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "password_resets"),
	))
	defer span.End()

	query := `
		INSERT INTO password_resets (email, token, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at`

	if _, err := r.db.Exec(ctx, query, email, token, time.Now().UTC()); err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert password reset", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPSERT failed")
		return fmt.Errorf("database error storing reset token: %w", err)
	}
	return nil
}

// ConsumePasswordReset deletes the reset record only if it still holds token.
// It returns ErrInvalidToken when the token was already used or superseded.
func (r *PostgresAuthRepo) ConsumePasswordReset(ctx context.Context, email, token string) error {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "ConsumePasswordReset", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "password_resets"),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE email = $1 AND token = $2`, email, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error consuming reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reset token already used or superseded", types.ErrInvalidToken)
	}
	return nil
}
