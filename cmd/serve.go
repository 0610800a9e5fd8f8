package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/app/tracer"
	"github.com/FACorreiaa/storefront-api/internal/container"
	"github.com/FACorreiaa/storefront-api/internal/router"
)

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(parent context.Context, rt *runtime) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, logger := rt.cfg, rt.logger

	providers, err := tracer.InitTracingAndMetrics(cfg.Observability.ServiceName)
	if err != nil {
		return fmt.Errorf("error initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.Any("error", err))
		}
	}()
	if cfg.Observability.MetricsPort != "" {
		tracer.ServeMetrics(ctx, cfg.Observability.MetricsPort, logger)
	}

	dbConfig, err := rt.databaseURL()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return err
	}
	pool, err := database.Init(dbConfig, logger)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(ctx, cfg, pool, logger)
	if err != nil {
		pool.Close()
		return err
	}
	defer c.Close()

	if !c.WaitForDB(ctx) {
		return errors.New("database not ready after waiting")
	}
	if err := c.AuthService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("error ensuring bootstrap admin: %w", err)
	}

	handler := otelhttp.NewHandler(router.SetupRouter(c.RouterConfig()), "storefront-api")
	srv := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("HTTP server gracefully stopped")
	return nil
}
