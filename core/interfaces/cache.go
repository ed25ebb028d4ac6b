// Package interfaces defines the contracts between the core and its collaborators.
// Everything the core needs from the outside world (caches, fetchers, logging)
// is injected through these interfaces so extraction and layout stay testable.
package interfaces

import (
	"context"
	"time"
)

// Cache stores raw bytes under a key with a TTL.
// The card service uses it to memoise fetched pages so a cosmetic re-render
// of the same URL does not fetch the page again.
//
// Example usage:
//
//	// Remember a fetched page for ten minutes
//	err := cache.Set(ctx, "page:https://example.com/news/1", body, 10*time.Minute)
//
//	// Reuse it on the next render
//	body, err := cache.Get(ctx, "page:https://example.com/news/1")
//	if err != nil {
//		// cache miss, fetch again
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns an error if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
