// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, fetching, assets and logging

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains page cache configuration
	Cache CacheConfig

	// Fetch contains page and image fetch limits
	Fetch FetchConfig

	// Card points at the layout configuration and the asset directory
	Card CardFiles

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig

	// Log contains logger configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// PageTTL is how long a fetched page is reused
	PageTTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// FetchConfig holds outbound fetch limits
type FetchConfig struct {
	// PageTimeout bounds one article page fetch
	PageTimeout time.Duration

	// ImageTimeout bounds the image fetches of one render
	ImageTimeout time.Duration

	// MaxConcurrent caps simultaneous outbound requests
	MaxConcurrent int
}

// CardFiles locates the card configuration on disk
type CardFiles struct {
	// ConfigPath is the YAML card configuration; empty means built-in defaults
	ConfigPath string

	// AssetsDir is where relative font and background paths are resolved
	AssetsDir string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Requests allowed per window per client
	Requests int

	// Window is the refill period
	Window time.Duration
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File enables a rotating log file in addition to stdout
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type:    getEnvOrDefault("CACHE_TYPE", CacheMemory),
			PageTTL: getEnvAsDurationOrDefault("PAGE_CACHE_TTL", 10*time.Minute),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "newscard:"),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "newscard_cache.db"),
			},
		},
		Fetch: FetchConfig{
			PageTimeout:   getEnvAsDurationOrDefault("PAGE_FETCH_TIMEOUT", 20*time.Second),
			ImageTimeout:  getEnvAsDurationOrDefault("IMAGE_FETCH_TIMEOUT", 10*time.Second),
			MaxConcurrent: getEnvAsIntOrDefault("FETCH_MAX_CONCURRENT", 8),
		},
		Card: CardFiles{
			ConfigPath: getEnvOrDefault("CARD_CONFIG", ""),
			AssetsDir:  getEnvOrDefault("ASSETS_DIR", "assets"),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 30),
			Window:   getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts a Go duration ("90s") or whole seconds ("90")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case CacheSQLite:
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Fetch.PageTimeout <= 0 || c.Fetch.ImageTimeout <= 0 {
		return errors.New("fetch timeouts must be positive")
	}

	if c.Fetch.MaxConcurrent < 1 {
		return errors.New("fetch concurrency must be at least 1")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit requires a positive request count and window")
	}

	return nil
}
