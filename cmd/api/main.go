// ABOUTME: Main entry point for the NewsCard API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"newscard-api/api"
	"newscard-api/api/handlers"
	"newscard-api/core/card"
	"newscard-api/core/extract"
	"newscard-api/core/interfaces"
	"newscard-api/core/layout"
	"newscard-api/core/services"
	"newscard-api/infrastructure/assets"
	"newscard-api/infrastructure/cache/memory"
	"newscard-api/infrastructure/cache/redis"
	"newscard-api/infrastructure/cache/sqlite"
	stdhttp "newscard-api/infrastructure/http/standard"
	"newscard-api/infrastructure/logger/structured"
	"newscard-api/pkg/config"
	"newscard-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Starting NewsCard API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"features":   flags.GetAllFlags(),
	})

	cache, closeCache := openCache(cfg, logger)
	defer closeCache()

	cardCfg, err := config.LoadCardConfig(cfg.Card.ConfigPath)
	if err != nil {
		logger.Error("Failed to load card configuration", map[string]interface{}{
			"path":  cfg.Card.ConfigPath,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	cardCfg.ResolveAssets(cfg.Card.AssetsDir)

	// News sites and their image CDNs in the target market commonly serve
	// broken certificate chains
	pageClient := stdhttp.NewStandardHTTPClient(stdhttp.Options{
		Timeout:            cfg.Fetch.PageTimeout,
		MaxConcurrent:      cfg.Fetch.MaxConcurrent,
		InsecureSkipVerify: true,
	})
	imageClient := stdhttp.NewStandardHTTPClient(stdhttp.Options{
		Timeout:            cfg.Fetch.ImageTimeout,
		MaxConcurrent:      cfg.Fetch.MaxConcurrent,
		InsecureSkipVerify: true,
	})

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:  cache,
		Pages:  stdhttp.NewPageFetcher(pageClient, logger),
		Images: stdhttp.NewImageFetcher(imageClient, logger),
		Logger: logger,
	}

	// Create services
	extractor := extract.NewService(deps, cardCfg.Site, cfg.Cache.PageTTL)
	compositor := layout.NewCompositor(cardCfg.Config, assets.Load(cardCfg.Config, logger))

	cardService := card.NewService(deps, extractor, compositor, card.Config{
		ImageTimeout: cfg.Fetch.ImageTimeout,
		BatchWorkers: min(runtime.NumCPU(), cfg.Fetch.MaxConcurrent),
	})
	ctx := context.Background()
	if flags.IsEnabled(ctx, featureflags.AccentColorEnabled) {
		cardService.SetAccentColorService(services.NewAccentColorService(deps))
	}
	diagnosticsService := services.NewDiagnosticsService(deps, cardCfg.Site, cfg.Fetch.PageTimeout)

	// Create API with middleware
	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.RateLimit.Requests
		apiConfig.RateWindow = cfg.RateLimit.Window
	}
	server := api.NewAPIWithMiddleware(apiConfig)
	defer server.Close()

	// Create and register handlers
	handlers.NewCardHandler(cardService, flags).RegisterRoutes(server.Huma)
	handlers.NewDiagnosticsHandler(diagnosticsService, flags).RegisterRoutes(server.Huma)
	handlers.NewHealthHandler(flags).RegisterRoutes(server.Huma)

	// Batches of slow pages take a while; the write timeout leaves room for them
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}

// openCache builds the configured page cache, falling back to memory when
// the backend is unavailable
func openCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Cache.Type {
	case config.CacheRedis:
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache, func() { redisCache.Close() }
		}
		logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	case config.CacheSQLite:
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, logger)
		if err == nil {
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
			return sqliteCache, func() { sqliteCache.Close() }
		}
		logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(), func() {}
}
