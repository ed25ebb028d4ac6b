// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"newscard-api/api/middleware"
	"newscard-api/core/interfaces"
)

const (
	apiTitle       = "NewsCard API"
	apiVersion     = "1.0.0"
	apiDescription = "Turns news article URLs into branded 1920x1080 PNG cards"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window, 0 disables limiting
	RateWindow time.Duration // rate limit window
}

// API bundles the Huma API with its router and any resources that need stopping
type API struct {
	Huma    huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// Close releases middleware resources
func (a *API) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-Card-Strategy",
			"X-Card-Image-Count",
			"X-Card-Accent-Color",
			"Retry-After",
		},
		MaxAge: 300,
	}).Handler
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription
	return config
}

// NewAPI creates and configures a new Huma API instance without logging or limits
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	// The OpenAPI document is served at /openapi.json and the docs UI at /docs
	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) *API {
	router := chi.NewRouter()

	// CORS first so preflight requests are never rate limited
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	a := &API{Router: router}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(a.limiter))
	}

	a.Huma = humachi.New(router, humaConfig())
	return a
}
