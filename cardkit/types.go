// ABOUTME: Public types for the cardkit library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package cardkit

import (
	"fmt"

	"newscard-api/core/domain"
)

// Image is one editorial image with its 1-based index
type Image struct {
	Index       int    `json:"index"`
	URL         string `json:"url"`
	AltText     string `json:"alt_text"`
	Attribution string `json:"attribution"`
}

// Summary is what extraction found on an article page
type Summary struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Images   []Image `json:"images"`
	Primary  Image   `json:"primary"`
	Strategy string  `json:"strategy"`
}

// RGBColor represents an RGB color
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as #rrggbb
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Card is a rendered card
type Card struct {
	URL         string    `json:"url"`
	PNG         []byte    `json:"-"`
	Mode        string    `json:"mode"`
	Attribution string    `json:"attribution"`
	AccentColor *RGBColor `json:"accent_color,omitempty"`
	Summary     Summary   `json:"summary"`
}

// BatchResult is the outcome for one URL of RenderBatch
type BatchResult struct {
	URL  string
	Card *Card
	Err  error
}

func summaryToPublic(s *domain.ArticleSummary) Summary {
	out := Summary{
		URL:      s.URL,
		Title:    s.Title,
		Content:  s.Content,
		Images:   make([]Image, len(s.Images)),
		Strategy: s.Strategy.String(),
		Primary: Image{
			URL:         s.Primary.URL,
			AltText:     s.Primary.AltText,
			Attribution: s.Primary.Attribution,
		},
	}
	for i, img := range s.Images {
		out.Images[i] = Image{
			Index:       i + 1,
			URL:         img.URL,
			AltText:     img.AltText,
			Attribution: img.Attribution,
		}
		if out.Primary.Index == 0 && img.URL == s.Primary.URL {
			out.Primary.Index = i + 1
		}
	}
	return out
}

func cardToPublic(c *domain.Card) *Card {
	out := &Card{
		URL:         c.Summary.URL,
		PNG:         c.PNG,
		Mode:        c.Mode.String(),
		Attribution: c.Attribution,
		Summary:     summaryToPublic(&c.Summary),
	}
	if c.AccentColor != nil {
		out.AccentColor = &RGBColor{R: c.AccentColor.R, G: c.AccentColor.G, B: c.AccentColor.B}
	}
	return out
}
