package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func setupRepoTest(t *testing.T) (*PostgresAuthRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresAuthRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestPostgresAuthRepo_ConsumePasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("matching token is deleted", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectExec(`DELETE FROM password_resets WHERE email = \$1 AND token = \$2`).
			WithArgs("dave@example.com", "tok").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.ConsumePasswordReset(ctx, "dave@example.com", "tok"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("spent or superseded token", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectExec(`DELETE FROM password_resets`).
			WithArgs("dave@example.com", "old").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.ConsumePasswordReset(ctx, "dave@example.com", "old")
		assert.ErrorIs(t, err, types.ErrInvalidToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectExec(`DELETE FROM password_resets`).
			WithArgs("dave@example.com", "tok").
			WillReturnError(errors.New("connection reset"))

		err := repo.ConsumePasswordReset(ctx, "dave@example.com", "tok")
		require.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrInvalidToken)
	})
}
