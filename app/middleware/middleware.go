package appMiddleware

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/storefront-api/config"
)

// CORS builds the cross-origin handler for the configured storefront origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// RateLimitByIP throttles credential endpoints. A disabled config yields a pass-through.
func RateLimitByIP(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled || cfg.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return httprate.LimitByIP(cfg.Requests, window)
}
