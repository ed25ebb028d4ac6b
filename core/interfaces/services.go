// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for card rendering and enrichment used by the API and the CLI

package interfaces

import (
	"context"
	"image"

	"newscard-api/core/domain"
)

// CardRequest asks for one card
type CardRequest struct {
	URL     string
	Options domain.LayoutOptions
}

// BatchResult is the outcome of one request in a batch
type BatchResult struct {
	URL  string
	Card *domain.Card
	Err  error
}

// CardService turns article URLs into cards
type CardService interface {
	Preview(ctx context.Context, url string) (*domain.ArticleSummary, error)
	Render(ctx context.Context, req CardRequest) (*domain.Card, error)
	RenderBatch(ctx context.Context, reqs []CardRequest) []BatchResult
}

// AccentColorService extracts a representative color from a decoded image.
// imageURL is only used as the cache key.
type AccentColorService interface {
	ExtractColor(ctx context.Context, imageURL string, img image.Image) (*domain.RGBColor, error)
}

// ImageSample is one <img> element as seen by the diagnostics service
type ImageSample struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ReaderComparison is what a generic reader-mode extractor makes of the page
type ReaderComparison struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image"`
	Error   string `json:"error,omitempty"`
}

// DiagnosticsReport describes the HTML structure of a page
type DiagnosticsReport struct {
	URL              string           `json:"url"`
	TotalImages      int              `json:"totalImages"`
	Images           []ImageSample    `json:"images"`
	HasArticle       bool             `json:"hasArticle"`
	ArticleImages    int              `json:"articleImages"`
	ArticleClass     string           `json:"articleClass,omitempty"`
	TrustedImageURLs []string         `json:"trustedImageUrls"`
	Reader           ReaderComparison `json:"reader"`
}

// DiagnosticsService inspects a page without rendering anything
type DiagnosticsService interface {
	Diagnose(ctx context.Context, url string) (*DiagnosticsReport, error)
}
