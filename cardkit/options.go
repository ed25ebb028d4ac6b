// ABOUTME: Configuration options for the cardkit client
// ABOUTME: Provides functional options for the client and for individual renders

package cardkit

import (
	"time"

	"newscard-api/core/domain"
	"newscard-api/core/interfaces"
	"newscard-api/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	// Cache memoises fetched pages
	Cache interfaces.Cache

	// Pages fetches article HTML; built from the default HTTP client when nil
	Pages interfaces.PageFetcher

	// Images fetches editorial images; built from the default HTTP client when nil
	Images interfaces.ImageFetcher

	// Logger configuration
	Logger interfaces.Logger

	// Card is the layout and site profile; the built-in card when nil
	Card *config.CardConfig

	// AssetsDir resolves relative font and background paths
	AssetsDir string

	// PageTTL is how long a fetched page is reused
	PageTTL time.Duration

	// ImageTimeout bounds the image fetches of one render
	ImageTimeout time.Duration

	// Workers caps concurrent renders in RenderBatch
	Workers int

	// AccentColor enables prominent color extraction for rendered cards
	AccentColor bool
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = interfaces.NopLogger{}
		return nil
	}
}

// WithPageFetcher sets the article page fetcher
func WithPageFetcher(pages interfaces.PageFetcher) Option {
	return func(c *Config) error {
		c.Pages = pages
		return nil
	}
}

// WithImageFetcher sets the editorial image fetcher
func WithImageFetcher(images interfaces.ImageFetcher) Option {
	return func(c *Config) error {
		c.Images = images
		return nil
	}
}

// WithCardConfig sets the card layout and site profile
func WithCardConfig(card *config.CardConfig) Option {
	return func(c *Config) error {
		if card == nil {
			return NewError(ErrorTypeConfiguration, "card config is nil")
		}
		if err := card.Validate(); err != nil {
			return NewError(ErrorTypeConfiguration, "invalid card config").WithCause(err)
		}
		c.Card = card
		return nil
	}
}

// WithCardConfigFile loads the card layout and site profile from a YAML file
func WithCardConfigFile(path string) Option {
	return func(c *Config) error {
		card, err := config.LoadCardConfig(path)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "failed to load card config").
				WithCause(err).
				WithContext("path", path)
		}
		c.Card = card
		return nil
	}
}

// WithAssetsDir sets the directory fonts and the background are read from
func WithAssetsDir(dir string) Option {
	return func(c *Config) error {
		c.AssetsDir = dir
		return nil
	}
}

// WithPageTTL sets how long fetched pages are cached
func WithPageTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.PageTTL = ttl
		return nil
	}
}

// WithImageTimeout bounds the image fetches of one render
func WithImageTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeConfiguration, "image timeout must be positive")
		}
		c.ImageTimeout = timeout
		return nil
	}
}

// WithWorkers sets the batch render concurrency
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewError(ErrorTypeConfiguration, "workers must be at least 1").
				WithContext("workers", n)
		}
		c.Workers = n
		return nil
	}
}

// WithAccentColor enables or disables accent color extraction
func WithAccentColor(enabled bool) Option {
	return func(c *Config) error {
		c.AccentColor = enabled
		return nil
	}
}

// RenderOption is a functional option for a single render
type RenderOption func(*domain.LayoutOptions)

// WithSource draws the image attribution over the image block
func WithSource() RenderOption {
	return func(o *domain.LayoutOptions) {
		o.ShowSource = true
	}
}

// WithDualImages fills the image block with the editorial images at the
// given 1-based indices
func WithDualImages(first, second int) RenderOption {
	return func(o *domain.LayoutOptions) {
		o.Mode = domain.RenderModeDual
		o.Selection = &domain.ImageSelection{First: first, Second: second}
	}
}

// WithTitle replaces the extracted title
func WithTitle(title string) RenderOption {
	return func(o *domain.LayoutOptions) {
		o.Overrides.Title = &title
	}
}

// WithContent replaces the extracted lead paragraph
func WithContent(content string) RenderOption {
	return func(o *domain.LayoutOptions) {
		o.Overrides.Content = &content
	}
}

// WithAltText replaces the attribution text
func WithAltText(alt string) RenderOption {
	return func(o *domain.LayoutOptions) {
		o.Overrides.AltText = &alt
	}
}
