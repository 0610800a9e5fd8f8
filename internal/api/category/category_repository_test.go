package category

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func setupRepoTest(t *testing.T) (*PostgresCategoryRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresCategoryRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

var categoryCols = []string{"id", "name", "description", "created_at"}

func TestPostgresCategoryRepo_List(t *testing.T) {
	repo, mock := setupRepoTest(t)
	ctx := context.Background()
	desc := "Gadgets"
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT id, name, description, created_at FROM categories`).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows(categoryCols).
			AddRow(uuid.New(), "Toys", &desc, now))

	got, total, err := repo.List(ctx, types.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Toys", got[0].Name)
	assert.Equal(t, "Gadgets", *got[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryRepo_ListCountFails(t *testing.T) {
	repo, mock := setupRepoTest(t)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("conn reset"))

	_, _, err := repo.List(context.Background(), types.Page{Page: 1, Limit: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn reset")
}

func TestPostgresCategoryRepo_GetNotFound(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()
	mock.ExpectQuery(`FROM categories WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(categoryCols))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryRepo_Create(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()
	input := types.CategoryInput{Name: "Books"}

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Books", input.Description).
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(id, "Books", (*string)(nil), time.Now()))

	c, err := repo.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Nil(t, c.Description)
}

func TestPostgresCategoryRepo_UpdateMissing(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()
	input := types.CategoryInput{Name: "Books"}
	mock.ExpectQuery(`UPDATE categories SET`).
		WithArgs("Books", input.Description, id).
		WillReturnRows(pgxmock.NewRows(categoryCols))

	_, err := repo.Update(context.Background(), id, input)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresCategoryRepo_Delete(t *testing.T) {
	repo, mock := setupRepoTest(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
