// ABOUTME: Main client for the cardkit library providing card rendering without HTTP
// ABOUTME: Wires extraction, layout and fetching behind a small functional-options API

package cardkit

import (
	"context"
	"io"
	"sync/atomic"

	"newscard-api/core/card"
	"newscard-api/core/domain"
	"newscard-api/core/extract"
	"newscard-api/core/interfaces"
	"newscard-api/core/layout"
	"newscard-api/core/services"
	"newscard-api/infrastructure/assets"
	httpInfra "newscard-api/infrastructure/http/standard"
	"newscard-api/pkg/config"
)

// Client is the main entry point for the cardkit library
type Client struct {
	cards  *card.Service
	config Config
	closed atomic.Bool
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	cfg := defaultConfig()

	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if cfg.Pages == nil || cfg.Images == nil {
		client := DefaultHTTPClient()
		if cfg.Pages == nil {
			cfg.Pages = httpInfra.NewPageFetcher(client, cfg.Logger)
		}
		if cfg.Images == nil {
			cfg.Images = httpInfra.NewImageFetcher(client, cfg.Logger)
		}
	}
	if cfg.Card == nil {
		cfg.Card = config.DefaultCardConfig()
	}
	cfg.Card.ResolveAssets(cfg.AssetsDir)

	deps := interfaces.Dependencies{
		Cache:  cfg.Cache,
		Pages:  cfg.Pages,
		Images: cfg.Images,
		Logger: cfg.Logger,
	}

	extractor := extract.NewService(deps, cfg.Card.Site, cfg.PageTTL)
	compositor := layout.NewCompositor(cfg.Card.Config, assets.Load(cfg.Card.Config, cfg.Logger))
	cards := card.NewService(deps, extractor, compositor, card.Config{
		ImageTimeout: cfg.ImageTimeout,
		BatchWorkers: cfg.Workers,
	})
	if cfg.AccentColor {
		cards.SetAccentColorService(services.NewAccentColorService(deps))
	}

	return &Client{cards: cards, config: cfg}, nil
}

// Close marks the client closed and closes the cache when it holds resources
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if closer, ok := c.config.Cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Preview extracts the article without rendering
func (c *Client) Preview(ctx context.Context, url string) (*Summary, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	s, err := c.cards.Preview(ctx, url)
	if err != nil {
		return nil, wrapError(err, url)
	}
	out := summaryToPublic(s)
	return &out, nil
}

// Render fetches the article at url and renders its card
func (c *Client) Render(ctx context.Context, url string, opts ...RenderOption) (*Card, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	rendered, err := c.cards.Render(ctx, interfaces.CardRequest{URL: url, Options: layoutOptions(opts)})
	if err != nil {
		return nil, wrapError(err, url)
	}
	return cardToPublic(rendered), nil
}

// RenderBatch renders every URL with the same options. Results keep the
// order of urls; one failure does not stop the others.
func (c *Client) RenderBatch(ctx context.Context, urls []string, opts ...RenderOption) []BatchResult {
	results := make([]BatchResult, len(urls))
	if c.closed.Load() {
		for i, url := range urls {
			results[i] = BatchResult{URL: url, Err: ErrClientClosed}
		}
		return results
	}

	layoutOpts := layoutOptions(opts)
	reqs := make([]interfaces.CardRequest, len(urls))
	for i, url := range urls {
		reqs[i] = interfaces.CardRequest{URL: url, Options: layoutOpts}
	}

	for i, r := range c.cards.RenderBatch(ctx, reqs) {
		results[i].URL = r.URL
		if r.Err != nil {
			results[i].Err = wrapError(r.Err, r.URL)
			continue
		}
		results[i].Card = cardToPublic(r.Card)
	}
	return results
}

func layoutOptions(opts []RenderOption) domain.LayoutOptions {
	o := domain.LayoutOptions{Mode: domain.RenderModeSingle}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validateConfig validates the client configuration
func validateConfig(cfg *Config) error {
	if cfg.Cache == nil {
		return NewError(ErrorTypeConfiguration, "cache is required")
	}

	if cfg.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if cfg.Workers < 1 {
		return NewError(ErrorTypeConfiguration, "workers must be at least 1")
	}

	return nil
}
