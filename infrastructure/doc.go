// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging and asset loading.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory page cache on patrickmn/go-cache
// - cache/redis: Redis page cache shared between replicas
// - cache/sqlite: SQLite page cache that survives restarts
// - http/standard: HTTP client with retries plus the page and image fetchers
// - logger/structured: logrus logger with optional rotating file output
// - assets: font and background loading for the compositor
//
// # Cache Implementations
//
// Every cache returns a NotFoundError on a miss:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "page:https://example.com/news/1", body, 10*time.Minute)
//	body, err := cache.Get(ctx, "page:https://example.com/news/1")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
//	cache, err := sqlite.NewSQLiteCache("newscard_cache.db", logger)
//
// # Fetchers
//
// The HTTP client retries 5xx responses and caps concurrent requests. Page
// failures are FetchErrors; image failures are nil images:
//
//	client := standard.NewStandardHTTPClient(standard.Options{Timeout: 20 * time.Second})
//	pages := standard.NewPageFetcher(client, logger)
//	images := standard.NewImageFetcher(client, logger)
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", File: "logs/newscard.log"})
//	logger.Info("Card rendered", map[string]interface{}{
//	    "url": "https://example.com/news/1",
//	})
//
// # Assets
//
//	provider := assets.Load(cardConfig.Config, logger)
//	compositor := layout.NewCompositor(cardConfig.Config, provider)
package infrastructure
