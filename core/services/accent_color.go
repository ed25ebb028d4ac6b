// ABOUTME: Accent color service extracts the prominent color of a card's primary image
// ABOUTME: Uses K-means clustering and caches results by image URL

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/EdlinOrg/prominentcolor"

	"newscard-api/core/domain"
	"newscard-api/core/interfaces"
)

const (
	defaultColorValue = 128
	colorCacheTTL     = 24 * time.Hour
)

// AccentColorService handles color extraction from decoded images
type AccentColorService struct {
	deps interfaces.Dependencies
}

// NewAccentColorService creates a new accent color service
func NewAccentColorService(deps interfaces.Dependencies) *AccentColorService {
	return &AccentColorService{
		deps: deps,
	}
}

// ExtractColor returns the most prominent color of img. It never fails:
// anything that goes wrong yields the default gray.
func (s *AccentColorService) ExtractColor(ctx context.Context, imageURL string, img image.Image) (*domain.RGBColor, error) {
	if img == nil {
		return s.defaultColor(), nil
	}

	cacheKey := fmt.Sprintf("accentColor:%s", imageURL)
	if s.deps.Cache != nil && imageURL != "" {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var color domain.RGBColor
			// Stored as "R,G,B"
			if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err == nil {
				return &color, nil
			}
		}
	}

	color, err := s.extractColor(img)
	if err != nil {
		s.deps.Log().Debug("Failed to extract accent color", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		return s.defaultColor(), nil
	}

	if s.deps.Cache != nil && imageURL != "" {
		cacheData := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(cacheData), colorCacheTTL)
	}

	return color, nil
}

// extractColor runs k-means with the default masks, then without them
func (s *AccentColorService) extractColor(img image.Image) (color *domain.RGBColor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			color = nil
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}

	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.ArgumentDefault,
		nrgba,
		prominentcolor.DefaultK,
		1,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.ArgumentDefault,
			nrgba,
			prominentcolor.DefaultK,
			1,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

// defaultColor returns the default gray color
func (s *AccentColorService) defaultColor() *domain.RGBColor {
	return &domain.RGBColor{
		R: defaultColorValue,
		G: defaultColorValue,
		B: defaultColorValue,
	}
}
