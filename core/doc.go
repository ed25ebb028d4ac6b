// Package core contains the business logic for the NewsCard API.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
//   - domain: ArticleSummary, ImageCandidate, LayoutOptions, Card and the sentinel texts
//   - extract: document model, title and lead paragraph extraction, image collection and scoring
//   - layout: text fitting and the compositor that draws the card
//   - card: the render pipeline from URL to PNG
//   - services: accent color and page diagnostics
//   - workers: bounded worker pool for batch renders
//   - errors: custom error types for better error handling
//   - interfaces: contracts for external dependencies (cache, fetchers, logger)
//
// # Design Principles
//
//   - All external dependencies are injected via interfaces
//   - Extraction and layout are pure functions of their inputs and testable in isolation
//   - Rendering the same summary with the same options yields the same pixels
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Pages:  myPages,  // implements interfaces.PageFetcher
//	    Images: myImages, // implements interfaces.ImageFetcher
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	extractor := extract.NewService(deps, extract.DefaultSiteProfile(), 0)
//	compositor := layout.NewCompositor(layout.DefaultConfig(), myAssets)
//	cards := card.NewService(deps, extractor, compositor, card.DefaultConfig())
//
//	c, err := cards.Render(ctx, interfaces.CardRequest{URL: "https://www.ctinews.com/news/items/1"})
package core
