package interfaces

import (
	"context"
	"image"
	"io"
)

// Browser identity sent with every outbound page request. Some news sites
// serve a stripped page to unknown clients.
const (
	BrowserUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	BrowserAcceptLanguage = "zh-TW,zh;q=0.9,en;q=0.8"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	Header(key string) string
}

// PageFetcher retrieves the HTML of an article page.
// Implementations follow redirects and return the body decoded to UTF-8.
// Any failure is returned as an error and is fatal to the extraction run.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// ImageFetcher retrieves and decodes an image.
// Any failure (network, status, decode) yields nil, never an error.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) image.Image
}
