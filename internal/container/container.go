package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/app/observability/metrics"
	"github.com/FACorreiaa/storefront-api/config"
	"github.com/FACorreiaa/storefront-api/internal/api/analytics"
	"github.com/FACorreiaa/storefront-api/internal/api/auth"
	"github.com/FACorreiaa/storefront-api/internal/api/category"
	"github.com/FACorreiaa/storefront-api/internal/api/order"
	"github.com/FACorreiaa/storefront-api/internal/api/partner"
	"github.com/FACorreiaa/storefront-api/internal/api/product"
	"github.com/FACorreiaa/storefront-api/internal/api/theme"
	"github.com/FACorreiaa/storefront-api/internal/api/translation"
	"github.com/FACorreiaa/storefront-api/internal/api/upload"
	"github.com/FACorreiaa/storefront-api/internal/api/user"
	"github.com/FACorreiaa/storefront-api/internal/router"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Pool    *pgxpool.Pool
	Redis   *redis.Client
	Metrics *metrics.AppMetrics

	AuthService        auth.AuthService
	AuthMiddleware     *auth.Middleware
	AuthHandler        *auth.HandlerImpl
	CategoryHandler    *category.HandlerImpl
	ProductHandler     *product.HandlerImpl
	TranslationHandler *translation.HandlerImpl
	OrderHandler       *order.HandlerImpl
	UserHandler        *user.HandlerImpl
	AnalyticsHandler   *analytics.HandlerImpl
	ThemeHandler       *theme.HandlerImpl
	PartnerHandler     *partner.HandlerImpl
	UploadHandler      *upload.HandlerImpl
}

// NewContainer wires repositories, services and handlers over an open pool.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	m := metrics.Get()
	db := database.NewInstrumentedQuerier(pool, m)

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Pool:    pool,
		Metrics: m,
	}

	tokens, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}
	revoked, err := c.newDenylist(ctx)
	if err != nil {
		return nil, err
	}

	authRepo := auth.NewPostgresAuthRepo(db, logger)
	c.AuthService = auth.NewAuthService(authRepo, tokens, auth.NewPasswordHasher(cfg.JWT.BcryptCost), revoked, m, logger)
	c.AuthMiddleware = auth.NewMiddleware(tokens, revoked, authRepo, logger)
	c.AuthHandler = auth.NewAuthHandlerImpl(c.AuthService, logger)

	categoryRepo := category.NewPostgresCategoryRepo(db, logger)
	c.CategoryHandler = category.NewHandlerImpl(category.NewCategoryService(categoryRepo, logger), logger)

	productRepo := product.NewPostgresProductRepo(db, logger)
	c.ProductHandler = product.NewHandlerImpl(product.NewProductService(productRepo, categoryRepo, logger), logger)

	translationRepo := translation.NewPostgresTranslationRepo(db, logger)
	c.TranslationHandler = translation.NewHandlerImpl(translation.NewTranslationService(translationRepo, logger), logger)

	orderRepo := order.NewPostgresOrderRepo(db, logger)
	c.OrderHandler = order.NewHandlerImpl(order.NewOrderService(orderRepo, logger), logger)

	userRepo := user.NewPostgresUserRepo(db, logger)
	c.UserHandler = user.NewHandlerImpl(user.NewUserService(userRepo, logger), logger)

	analyticsRepo := analytics.NewPostgresAnalyticsRepo(db, logger)
	c.AnalyticsHandler = analytics.NewHandlerImpl(analytics.NewAnalyticsService(analyticsRepo, logger), logger)

	themeRepo := theme.NewPostgresThemeRepo(db, logger)
	c.ThemeHandler = theme.NewHandlerImpl(theme.NewThemeService(themeRepo, logger), logger)

	partnerRepo := partner.NewPostgresPartnerRepo(db, logger)
	c.PartnerHandler = partner.NewHandlerImpl(partner.NewPartnerService(partnerRepo, logger), logger)

	uploadHandler, err := c.newUploadHandler(ctx)
	if err != nil {
		return nil, err
	}
	c.UploadHandler = uploadHandler

	return c, nil
}

func (c *Container) newDenylist(ctx context.Context) (auth.Denylist, error) {
	rc := c.Config.Repositories.Redis
	if rc.Addr == "" {
		c.Logger.Info("Using in-memory token denylist")
		return auth.NewMemoryDenylist(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
		PoolSize: rc.PoolSize,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", rc.Addr, err)
	}
	c.Redis = client
	c.Logger.Info("Using redis token denylist", slog.String("addr", rc.Addr))
	return auth.NewRedisDenylist(client), nil
}

func (c *Container) newUploadHandler(ctx context.Context) (*upload.HandlerImpl, error) {
	uc := c.Config.Upload

	local, err := upload.NewLocalTransport(uc.Dir, c.Config.Server.APIPrefix+"/uploads")
	if err != nil {
		return nil, err
	}

	var primary upload.Transport
	switch uc.Primary {
	case "ftp":
		if primary, err = upload.NewFTPTransport(uc.FTP, uc.PrimaryTimeout); err != nil {
			return nil, err
		}
	case "s3":
		if primary, err = upload.NewS3Transport(ctx, uc.S3); err != nil {
			return nil, err
		}
	}
	if primary != nil {
		c.Logger.Info("Primary upload transport configured", slog.String("transport", primary.Name()))
	}

	gateway := upload.NewGateway(primary, local, uc.PrimaryTimeout, c.Metrics, c.Logger)
	return upload.NewHandlerImpl(gateway, local, uc.MaxSizeBytes, c.Logger), nil
}

// RouterConfig exposes the handlers to the router.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		APIPrefix:          c.Config.Server.APIPrefix,
		AllowedOrigins:     c.Config.Server.AllowedOrigins,
		RequestTimeout:     c.Config.Server.Timeout,
		RateLimit:          c.Config.Server.RateLimit,
		Logger:             c.Logger,
		AuthMiddleware:     c.AuthMiddleware,
		AuthHandler:        c.AuthHandler,
		CategoryHandler:    c.CategoryHandler,
		ProductHandler:     c.ProductHandler,
		TranslationHandler: c.TranslationHandler,
		OrderHandler:       c.OrderHandler,
		UserHandler:        c.UserHandler,
		AnalyticsHandler:   c.AnalyticsHandler,
		ThemeHandler:       c.ThemeHandler,
		PartnerHandler:     c.PartnerHandler,
		UploadHandler:      c.UploadHandler,
	}
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready.
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
