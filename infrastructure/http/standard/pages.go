// ABOUTME: Page fetcher downloads article HTML and decodes it to UTF-8
// ABOUTME: Any transport failure or non-2xx status becomes a FetchError

package standard

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	coreerrors "newscard-api/core/errors"
	"newscard-api/core/interfaces"
)

// DefaultMaxPageBytes caps how much of a page is read
const DefaultMaxPageBytes = 10 * 1024 * 1024

// PageFetcher implements interfaces.PageFetcher
type PageFetcher struct {
	client   interfaces.HTTPClient
	maxBytes int64
	logger   interfaces.Logger
}

// NewPageFetcher creates a page fetcher on top of client
func NewPageFetcher(client interfaces.HTTPClient, logger interfaces.Logger) *PageFetcher {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &PageFetcher{client: client, maxBytes: DefaultMaxPageBytes, logger: logger}
}

// FetchPage returns the page body decoded to UTF-8
func (f *PageFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		f.logger.Warn("Page fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}
	defer resp.Body().Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		f.logger.Warn("Page fetch returned non-2xx status", map[string]interface{}{
			"url":    url,
			"status": code,
		})
		return nil, &coreerrors.FetchError{URL: url, StatusCode: code}
	}

	// charset.NewReader sniffs the declared or detected encoding; Big5 pages
	// are still common on Taiwanese news sites.
	reader, err := charset.NewReader(io.LimitReader(resp.Body(), f.maxBytes), resp.Header("Content-Type"))
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: fmt.Errorf("decode charset: %w", err)}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	f.logger.Debug("Page fetched", map[string]interface{}{
		"url":   url,
		"bytes": len(body),
	})
	return body, nil
}
