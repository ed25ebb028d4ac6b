// ABOUTME: Image fetcher downloads and decodes editorial images
// ABOUTME: Failures are reported as a nil image so the compositor can draw a placeholder

package standard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strconv"

	_ "golang.org/x/image/webp"

	"newscard-api/core/interfaces"
)

const (
	// DefaultMaxImageBytes caps how much of an image is read
	DefaultMaxImageBytes = 20 * 1024 * 1024

	// DefaultMaxImagePixels caps the declared dimensions decoded; a small
	// file can declare a canvas large enough to exhaust memory
	DefaultMaxImagePixels = 50_000_000
)

// ImageFetcher implements interfaces.ImageFetcher
type ImageFetcher struct {
	client    interfaces.HTTPClient
	maxBytes  int64
	maxPixels int64
	logger    interfaces.Logger
}

// NewImageFetcher creates an image fetcher on top of client
func NewImageFetcher(client interfaces.HTTPClient, logger interfaces.Logger) *ImageFetcher {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &ImageFetcher{
		client:    client,
		maxBytes:  DefaultMaxImageBytes,
		maxPixels: DefaultMaxImagePixels,
		logger:    logger,
	}
}

// FetchImage returns the decoded image or nil
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) image.Image {
	if url == "" {
		return nil
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		f.miss(url, "fetch", err.Error())
		return nil
	}
	defer resp.Body().Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		f.miss(url, "status", strconv.Itoa(code))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body(), f.maxBytes))
	if err != nil {
		f.miss(url, "read", err.Error())
		return nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		f.miss(url, "decode", err.Error())
		return nil
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > f.maxPixels {
		f.miss(url, "dimensions", fmt.Sprintf("%dx%d exceeds %d pixels", cfg.Width, cfg.Height, f.maxPixels))
		return nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		f.miss(url, "decode", err.Error())
		return nil
	}

	f.logger.Debug("Image fetched", map[string]interface{}{
		"url":    url,
		"format": format,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
	return img
}

func (f *ImageFetcher) miss(url, stage, reason string) {
	f.logger.Debug("Image unavailable", map[string]interface{}{
		"url":    url,
		"stage":  stage,
		"reason": reason,
	})
}
