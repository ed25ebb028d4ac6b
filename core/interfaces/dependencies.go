// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the collaborators required by extraction, rendering and enrichment

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache memoises fetched pages; optional
	Cache Cache

	// Pages fetches article HTML
	Pages PageFetcher

	// Images fetches and decodes editorial images
	Images ImageFetcher

	// Logger provides structured logging
	Logger Logger
}

// Log returns the configured logger or a no-op logger
func (d Dependencies) Log() Logger {
	if d.Logger == nil {
		return NopLogger{}
	}
	return d.Logger
}
