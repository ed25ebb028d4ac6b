// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for fetchers, caches and loggers

package cardkit

import (
	"runtime"
	"time"

	"newscard-api/core/interfaces"
	"newscard-api/infrastructure/cache/memory"
	"newscard-api/infrastructure/cache/sqlite"
	httpInfra "newscard-api/infrastructure/http/standard"
	"newscard-api/infrastructure/logger/structured"
)

const (
	defaultPageTimeout   = 20 * time.Second
	defaultImageTimeout  = 10 * time.Second
	defaultMaxConcurrent = 8
)

// DefaultHTTPClient creates an HTTP client with browser headers and retries.
// Certificate verification is skipped because many news sites serve
// incomplete chains.
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(httpInfra.Options{
		Timeout:            defaultPageTimeout,
		MaxConcurrent:      defaultMaxConcurrent,
		InsecureSkipVerify: true,
	})
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string, logger interfaces.Logger) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath, logger)
}

// DefaultLogger creates a text logger on stdout that only reports warnings
func DefaultLogger() interfaces.Logger {
	return structured.New(structured.Options{Level: "warn", Format: "text"})
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "newscard_cache.db"
			}
			cache, err := DefaultSQLiteCache(opt.FilePath, c.Logger)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open sqlite cache").
					WithCause(err).
					WithContext("path", opt.FilePath)
			}
			c.Cache = cache
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:        DefaultMemoryCache(),
		Logger:       DefaultLogger(),
		ImageTimeout: defaultImageTimeout,
		Workers:      runtime.NumCPU(),
		AccentColor:  true,
	}
}
