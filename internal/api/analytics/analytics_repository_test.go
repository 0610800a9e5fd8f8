package analytics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func TestPostgresAnalyticsRepo_Count(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresAnalyticsRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	n, err := repo.Count(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = repo.Count(context.Background(), "users; DROP TABLE users")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAnalyticsRepo_OrderSummaries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresAnalyticsRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	created := time.Now()
	mock.ExpectQuery(`SELECT items, total, status, created_at FROM orders`).
		WillReturnRows(pgxmock.NewRows([]string{"items", "total", "status", "created_at"}).
			AddRow([]byte(`[{"product_id":"6f1c5a8e-8a4e-4a53-9b55-0b7d2b8c2f11","product_name":"Mouse","quantity":2,"price":5}]`),
				10.0, types.OrderPending, created))

	got, err := repo.OrderSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, 2, got[0].Items[0].Quantity)
	assert.Equal(t, types.OrderPending, got[0].Status)
}
