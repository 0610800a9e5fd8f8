package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appLogger "github.com/FACorreiaa/storefront-api/app/logger"
	appMiddleware "github.com/FACorreiaa/storefront-api/app/middleware"
	"github.com/FACorreiaa/storefront-api/config"
	_ "github.com/FACorreiaa/storefront-api/docs"
	"github.com/FACorreiaa/storefront-api/internal/api"
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
)

// Config contains the dependencies needed for the router setup.
type Config struct {
	APIPrefix      string
	AllowedOrigins []string
	RequestTimeout time.Duration
	RateLimit      config.RateLimitConfig
	Logger         *slog.Logger

	AuthMiddleware     *auth.Middleware
	AuthHandler        auth.Handler
	CategoryHandler    category.Handler
	ProductHandler     product.Handler
	TranslationHandler translation.Handler
	OrderHandler       order.Handler
	UserHandler        user.Handler
	AnalyticsHandler   *analytics.HandlerImpl
	ThemeHandler       *theme.HandlerImpl
	PartnerHandler     partner.Handler
	UploadHandler      *upload.HandlerImpl
}

// SetupRouter builds the full route table. Every API route lives under cfg.APIPrefix.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(appMiddleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/"
	}
	r.Route(prefix, func(r chi.Router) {
		r.Get("/health", health)

		// Files are served outside the request timeout, and ServeUpload lifts the server write deadline.
		r.Get("/uploads/*", cfg.UploadHandler.ServeUpload)

		r.Group(func(r chi.Router) {
			if cfg.RequestTimeout > 0 {
				r.Use(middleware.Timeout(cfg.RequestTimeout))
			}
			mountPublic(r, cfg)

			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthMiddleware.Authenticate)
				mountAuthenticated(r, cfg)

				r.Group(func(r chi.Router) {
					r.Use(cfg.AuthMiddleware.RequireAdmin)
					mountAdmin(r, cfg)
				})
			})
		})
	})

	return r
}

func mountPublic(r chi.Router, cfg *Config) {
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RateLimitByIP(cfg.RateLimit))
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Post("/auth/reset-password", cfg.AuthHandler.ResetPassword)
	})
	r.Post("/auth/refresh", cfg.AuthHandler.Refresh)

	r.Get("/categories", cfg.CategoryHandler.ListCategories)
	r.Get("/categories/{id}", cfg.CategoryHandler.GetCategory)
	r.Get("/products", cfg.ProductHandler.ListProducts)
	r.Get("/products/{id}", cfg.ProductHandler.GetProduct)
	r.Get("/translations/{lang}", cfg.TranslationHandler.GetTranslations)
	r.Get("/theme", cfg.ThemeHandler.GetTheme)
	r.Get("/partners", cfg.PartnerHandler.ListPartners)
}

func mountAuthenticated(r chi.Router, cfg *Config) {
	r.Get("/auth/me", cfg.AuthHandler.Me)
	r.Put("/auth/profile", cfg.AuthHandler.UpdateProfile)
	r.Post("/auth/logout", cfg.AuthHandler.Logout)

	r.Get("/orders", cfg.OrderHandler.ListOrders)
	r.Get("/orders/{id}", cfg.OrderHandler.GetOrder)
	r.Post("/orders", cfg.OrderHandler.CreateOrder)
}

func mountAdmin(r chi.Router, cfg *Config) {
	r.Put("/auth/profile/{user_id}", cfg.AuthHandler.UpdateUserProfile)

	r.Post("/categories", cfg.CategoryHandler.CreateCategory)
	r.Put("/categories/{id}", cfg.CategoryHandler.UpdateCategory)
	r.Delete("/categories/{id}", cfg.CategoryHandler.DeleteCategory)

	r.Post("/products", cfg.ProductHandler.CreateProduct)
	r.Put("/products/{id}", cfg.ProductHandler.UpdateProduct)
	r.Delete("/products/{id}", cfg.ProductHandler.DeleteProduct)

	r.Post("/translations", cfg.TranslationHandler.UpsertTranslation)
	r.Put("/orders/{id}/status", cfg.OrderHandler.UpdateOrderStatus)

	r.Get("/users", cfg.UserHandler.ListUsers)
	r.Get("/users/{id}", cfg.UserHandler.GetUser)
	r.Get("/analytics", cfg.AnalyticsHandler.GetAnalytics)

	r.Put("/theme", cfg.ThemeHandler.UpdateTheme)
	r.Post("/partners", cfg.PartnerHandler.CreatePartner)
	r.Delete("/partners/{id}", cfg.PartnerHandler.DeletePartner)

	r.Post("/upload", cfg.UploadHandler.Upload)
}

// health godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
