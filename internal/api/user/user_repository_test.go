package user

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func setupRepoTest(t *testing.T) (*PostgresUserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresUserRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

var userCols = []string{"id", "email", "full_name", "role", "created_at", "updated_at"}

func TestPostgresUserRepo_List(t *testing.T) {
	repo, mock := setupRepoTest(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(`SELECT id, email, full_name, role, created_at, updated_at FROM users ORDER BY created_at DESC, id LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 20).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(uuid.New(), "zed@example.com", "Zed", types.RoleCustomer, now, now))

	users, total, err := repo.List(context.Background(), types.Page{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, users, 1)
	assert.Equal(t, "zed@example.com", users[0].Email)
	assert.Empty(t, users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepo_GetNotFound(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
