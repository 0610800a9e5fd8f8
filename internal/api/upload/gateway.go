package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/app/observability/metrics"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

// Gateway stores uploads on the primary transport and falls back to the local one
// when the primary is missing, failing, or its breaker is open.
type Gateway struct {
	logger   *slog.Logger
	primary  Transport
	fallback Transport
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	metrics  *metrics.AppMetrics
}

// NewGateway accepts a nil primary, in which case every upload goes to fallback.
func NewGateway(primary, fallback Transport, timeout time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *Gateway {
	g := &Gateway{
		logger:   logger,
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		metrics:  m,
	}
	if primary != nil {
		g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "upload-" + primary.Name(),
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Upload breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}
	return g
}

// Store makes one attempt on each transport. Failure of both wraps types.ErrUpstream.
func (g *Gateway) Store(ctx context.Context, key string, data []byte) (string, error) {
	ctx, span := otel.Tracer("UploadGateway").Start(ctx, "Store", trace.WithAttributes(
		attribute.String("upload.key", key),
		attribute.Int("upload.size", len(data)),
	))
	defer span.End()

	l := g.logger.With(slog.String("method", "Store"), slog.String("key", key))

	var primaryErr error
	if g.primary != nil {
		url, err := g.putPrimary(ctx, key, data)
		if err == nil {
			g.metrics.Upload(ctx, g.primary.Name(), false)
			span.SetAttributes(attribute.String("upload.transport", g.primary.Name()))
			span.SetStatus(codes.Ok, "Stored on primary")
			return url, nil
		}
		primaryErr = err
		span.RecordError(err)
		l.WarnContext(ctx, "Primary upload transport failed, using fallback",
			slog.String("transport", g.primary.Name()),
			slog.Any("error", err))
	}

	url, err := g.fallback.Put(ctx, key, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "All upload transports failed")
		l.ErrorContext(ctx, "Fallback upload transport failed", slog.Any("error", err))
		if primaryErr != nil {
			return "", fmt.Errorf("%w: upload failed: primary: %v; fallback: %v", types.ErrUpstream, primaryErr, err)
		}
		return "", fmt.Errorf("%w: upload failed: %v", types.ErrUpstream, err)
	}

	g.metrics.Upload(ctx, g.fallback.Name(), primaryErr != nil)
	span.SetAttributes(
		attribute.String("upload.transport", g.fallback.Name()),
		attribute.Bool("upload.fallback", primaryErr != nil),
	)
	span.SetStatus(codes.Ok, "Stored on fallback")
	return url, nil
}

func (g *Gateway) putPrimary(ctx context.Context, key string, data []byte) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.primary.Put(ctx, key, data)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
