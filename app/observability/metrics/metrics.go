package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the instruments recorded by the API.
type AppMetrics struct {
	RegisterRequestsTotal  metric.Int64Counter
	LoginAttemptsTotal     metric.Int64Counter
	UploadsTotal           metric.Int64Counter
	UploadFallbackTotal    metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.RegisterRequestsTotal, err = meter.Int64Counter(
		"register_requests_total",
		metric.WithDescription("Total number of completed registrations"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("register_requests_total: %w", err)
	}
	if m.LoginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Login attempts partitioned by outcome"),
		metric.WithUnit("{attempt}"),
	); err != nil {
		return nil, fmt.Errorf("login_attempts_total: %w", err)
	}
	if m.UploadsTotal, err = meter.Int64Counter(
		"uploads_total",
		metric.WithDescription("Stored uploads partitioned by transport"),
		metric.WithUnit("{file}"),
	); err != nil {
		return nil, fmt.Errorf("uploads_total: %w", err)
	}
	if m.UploadFallbackTotal, err = meter.Int64Counter(
		"upload_fallback_total",
		metric.WithDescription("Uploads that fell back to local storage after a primary transport failure"),
		metric.WithUnit("{file}"),
	); err != nil {
		return nil, fmt.Errorf("upload_fallback_total: %w", err)
	}
	if m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}
	if m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}
	return m, nil
}

// Get returns the process-wide instruments, built from the global MeterProvider on first use.
// Call it after the tracer package has installed the provider.
func Get() *AppMetrics {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("storefront-api"))
		if err != nil {
			panic(fmt.Sprintf("metrics instruments not initialized: %v", err))
		}
		appMetrics = m
	})
	return appMetrics
}

// ObserveQuery records the duration of a query and counts it as an error when err is non-nil.
func (m *AppMetrics) ObserveQuery(ctx context.Context, table, operation string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("db.sql.table", table),
		attribute.String("db.operation", operation),
	)
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (m *AppMetrics) LoginAttempt(ctx context.Context, outcome string) {
	m.LoginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) Upload(ctx context.Context, transport string, fellBack bool) {
	m.UploadsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("transport", transport)))
	if fellBack {
		m.UploadFallbackTotal.Add(ctx, 1)
	}
}
