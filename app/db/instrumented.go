package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/storefront-api/app/observability/metrics"
)

// InstrumentedQuerier records the duration and failures of every statement.
type InstrumentedQuerier struct {
	next    Querier
	metrics *metrics.AppMetrics
}

var _ Querier = (*InstrumentedQuerier)(nil)

func NewInstrumentedQuerier(next Querier, m *metrics.AppMetrics) *InstrumentedQuerier {
	return &InstrumentedQuerier{next: next, metrics: m}
}

func (q *InstrumentedQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	tag, err := q.next.Exec(ctx, sql, args...)
	q.metrics.ObserveQuery(ctx, tableOf(sql), operationOf(sql), start, err)
	return tag, err
}

func (q *InstrumentedQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	start := time.Now()
	rows, err := q.next.Query(ctx, sql, args...)
	q.metrics.ObserveQuery(ctx, tableOf(sql), operationOf(sql), start, err)
	return rows, err
}

func (q *InstrumentedQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &instrumentedRow{
		row:   q.next.QueryRow(ctx, sql, args...),
		ctx:   ctx,
		sql:   sql,
		start: time.Now(),
		m:     q.metrics,
	}
}

type instrumentedRow struct {
	row   pgx.Row
	ctx   context.Context
	sql   string
	start time.Time
	m     *metrics.AppMetrics
}

func (r *instrumentedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	var recorded error
	if err != nil && err != pgx.ErrNoRows {
		recorded = err
	}
	r.m.ObserveQuery(r.ctx, tableOf(r.sql), operationOf(r.sql), r.start, recorded)
	return err
}

func operationOf(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	op := strings.ToUpper(fields[0])
	if op == "WITH" {
		return "SELECT"
	}
	return op
}

// tableOf picks the first identifier after FROM, INTO or UPDATE. Good enough for a metric label.
func tableOf(sql string) string {
	fields := strings.Fields(sql)
	for i := 0; i < len(fields)-1; i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			return strings.Trim(fields[i+1], "(),;")
		}
	}
	return "unknown"
}
