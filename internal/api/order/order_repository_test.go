package order

import (
	"context"
	"encoding/json"
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

var orderCols = []string{"id", "user_id", "items", "total", "status", "shipping_address", "created_at"}

func setupOrderRepoTest(t *testing.T) (*PostgresOrderRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresOrderRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func orderRow(t *testing.T, id, userID uuid.UUID, status types.OrderStatus) []interface{} {
	t.Helper()
	items, err := json.Marshal([]types.OrderItem{{ProductID: uuid.New(), ProductName: "Mouse", Quantity: 2, Price: 10}})
	require.NoError(t, err)
	addr, err := json.Marshal(types.AddressInfo{StreetAddress: "1 Main St", City: "Springfield", Country: "United States"})
	require.NoError(t, err)
	return []interface{}{id, userID, items, 20.0, status, addr, time.Now()}
}

func TestPostgresOrderRepo_ListForUser(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM orders WHERE user_id = \$1 ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
		WithArgs(userID, 20, 0).
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(orderRow(t, uuid.New(), userID, types.OrderPending)...))

	orders, total, err := repo.List(context.Background(), &userID, types.Page{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "Mouse", orders[0].Items[0].ProductName)
	assert.Equal(t, "Springfield", orders[0].ShippingAddress.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepo_ListAll(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders$`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM orders ORDER BY created_at DESC, id LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows(orderCols))

	orders, total, err := repo.List(context.Background(), nil, types.Page{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepo_GetNotFound(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	id := uuid.New()
	mock.ExpectQuery(`FROM orders WHERE id = \$1`).WithArgs(id).WillReturnRows(pgxmock.NewRows(orderCols))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresOrderRepo_UpdateStatus(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE orders SET status = \$1 WHERE id = \$2`).
		WithArgs(types.OrderShipped, id).
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(orderRow(t, id, userID, types.OrderShipped)...))

	o, err := repo.UpdateStatus(context.Background(), id, types.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, types.OrderShipped, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
