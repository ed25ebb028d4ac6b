// ABOUTME: Layout configuration for the card compositor
// ABOUTME: Defaults reproduce the production 1920x1080 card; YAML files override individual fields

package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	coreerrors "newscard-api/core/errors"
)

// Config is the full geometry, typography and color description of a card.
// It is built once and passed by value to the compositor.
type Config struct {
	Canvas  CanvasConfig  `yaml:"layout"`
	Title   TitleConfig   `yaml:"title"`
	Content ContentConfig `yaml:"content"`
	Image   ImageConfig   `yaml:"image"`
	Colors  ColorConfig   `yaml:"colors"`
}

// CanvasConfig places the white content area on the background
type CanvasConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	BackgroundPath  string `yaml:"background_path"`
	WhiteAreaLeft   int    `yaml:"white_area_left"`
	WhiteAreaTop    int    `yaml:"white_area_top"`
	WhiteAreaWidth  int    `yaml:"white_area_width"`
	WhiteAreaHeight int    `yaml:"white_area_height"`
	HeaderHeight    int    `yaml:"header_height"`
	ContentImageGap int    `yaml:"content_image_gap"`
}

// TitleConfig controls the headline block
type TitleConfig struct {
	FontRegular              string           `yaml:"font_path_regular"`
	FontBold                 string           `yaml:"font_path_bold"`
	Bold                     bool             `yaml:"bold"`
	BaseFontSize             int              `yaml:"base_font_size"`
	MaxFontSize              int              `yaml:"max_font_size"`
	LineHeightMultiplier     float64          `yaml:"line_height_multiplier"`
	HorizontalPadding        int              `yaml:"horizontal_padding"`
	VerticalPaddingMultiline int              `yaml:"vertical_padding_multiline"`
	VerticalOffsetMultiline  int              `yaml:"vertical_offset_multiline"`
	SingleLine               SingleLineConfig `yaml:"single_line"`
}

// SingleLineConfig controls auto-scaling and stretching of one-line titles
type SingleLineConfig struct {
	FillPercentage        float64 `yaml:"fill_percentage"`
	VerticalStretchFactor float64 `yaml:"vertical_stretch_factor"`
	MaxStretchFactor      float64 `yaml:"max_stretch_factor"`
	TempPaddingH          int     `yaml:"temp_image_padding_h"`
	TempPaddingV          int     `yaml:"temp_image_padding_v"`
	VerticalOffset        int     `yaml:"vertical_offset"`
}

// ContentConfig controls the lead paragraph block
type ContentConfig struct {
	FontSize            int `yaml:"font_size"`
	LineHeight          int `yaml:"line_height"`
	TopPadding          int `yaml:"top_padding"`
	BottomPadding       int `yaml:"bottom_padding"`
	MaxLinesWhenCramped int `yaml:"max_lines_when_cramped"`
}

// ImageConfig controls the image block and the source overlay
type ImageConfig struct {
	MinHeight               int    `yaml:"min_height"`
	MinHeightForFullContent int    `yaml:"min_height_for_full_content"`
	DualGap                 int    `yaml:"dual_image_gap"`
	SourceFontPath          string `yaml:"source_text_font_path"`
	SourceFontSize          int    `yaml:"source_text_font_size"`
	SourceMarginH           int    `yaml:"source_text_horizontal_margin"`
	SourceMarginV           int    `yaml:"source_text_vertical_margin"`
	SourceStrokeWidth       int    `yaml:"source_text_stroke_width"`
	PlaceholderFontSize     int    `yaml:"placeholder_font_size"`
	DualPlaceholderFontSize int    `yaml:"dual_placeholder_font_size"`
	DualPlaceholderInset    int    `yaml:"dual_placeholder_inset"`
}

// ColorConfig holds hex colors ("#rrggbb")
type ColorConfig struct {
	Background      string `yaml:"background"`
	Text            string `yaml:"text"`
	Placeholder     string `yaml:"placeholder"`
	PlaceholderText string `yaml:"placeholder_text"`
	SourceFill      string `yaml:"source_fill"`
	SourceStroke    string `yaml:"source_stroke"`
}

// DefaultConfig returns the production card layout
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:           1920,
			Height:          1080,
			BackgroundPath:  "ctinews_background.jpg",
			WhiteAreaLeft:   35,
			WhiteAreaTop:    142,
			WhiteAreaWidth:  1850,
			WhiteAreaHeight: 960,
			HeaderHeight:    171,
			ContentImageGap: 10,
		},
		Title: TitleConfig{
			FontRegular:              "NotoSansTC-Regular.ttf",
			FontBold:                 "NotoSansTC-Bold.ttf",
			BaseFontSize:             82,
			MaxFontSize:              120,
			LineHeightMultiplier:     1.1,
			HorizontalPadding:        40,
			VerticalPaddingMultiline: 20,
			VerticalOffsetMultiline:  -20,
			SingleLine: SingleLineConfig{
				FillPercentage:        1.0,
				VerticalStretchFactor: 2.0,
				MaxStretchFactor:      2.0,
				TempPaddingH:          40,
				TempPaddingV:          60,
				VerticalOffset:        -50,
			},
		},
		Content: ContentConfig{
			FontSize:            28,
			LineHeight:          35,
			TopPadding:          5,
			BottomPadding:       15,
			MaxLinesWhenCramped: 8,
		},
		Image: ImageConfig{
			MinHeight:               200,
			MinHeightForFullContent: 300,
			DualGap:                 10,
			SourceFontPath:          "DFT_8.TTC",
			SourceFontSize:          36,
			SourceMarginH:           30,
			SourceMarginV:           60,
			SourceStrokeWidth:       3,
			PlaceholderFontSize:     32,
			DualPlaceholderFontSize: 24,
			DualPlaceholderInset:    20,
		},
		Colors: ColorConfig{
			Background:      "#ffffff",
			Text:            "#000000",
			Placeholder:     "#808080",
			PlaceholderText: "#ffffff",
			SourceFill:      "#ffffff",
			SourceStroke:    "#000000",
		},
	}
}

// Validate rejects configurations the compositor cannot draw
func (c Config) Validate() error {
	positive := []struct {
		field string
		value int
	}{
		{"layout.width", c.Canvas.Width},
		{"layout.height", c.Canvas.Height},
		{"layout.white_area_width", c.Canvas.WhiteAreaWidth},
		{"layout.white_area_height", c.Canvas.WhiteAreaHeight},
		{"title.base_font_size", c.Title.BaseFontSize},
		{"title.max_font_size", c.Title.MaxFontSize},
		{"content.font_size", c.Content.FontSize},
		{"content.line_height", c.Content.LineHeight},
		{"image.source_text_font_size", c.Image.SourceFontSize},
		{"image.placeholder_font_size", c.Image.PlaceholderFontSize},
		{"image.dual_placeholder_font_size", c.Image.DualPlaceholderFontSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &coreerrors.ValidationError{Field: p.field, Message: "must be positive"}
		}
	}

	if c.Title.MaxFontSize < c.Title.BaseFontSize {
		return &coreerrors.ValidationError{Field: "title.max_font_size", Message: "must not be below base_font_size"}
	}
	if c.Content.MaxLinesWhenCramped < 0 {
		return &coreerrors.ValidationError{Field: "content.max_lines_when_cramped", Message: "must not be negative"}
	}
	if c.Image.SourceStrokeWidth < 0 {
		return &coreerrors.ValidationError{Field: "image.source_text_stroke_width", Message: "must not be negative"}
	}

	colors := []struct {
		field string
		value string
	}{
		{"colors.background", c.Colors.Background},
		{"colors.text", c.Colors.Text},
		{"colors.placeholder", c.Colors.Placeholder},
		{"colors.placeholder_text", c.Colors.PlaceholderText},
		{"colors.source_fill", c.Colors.SourceFill},
		{"colors.source_stroke", c.Colors.SourceStroke},
	}
	for _, col := range colors {
		if _, err := ParseHexColor(col.value); err != nil {
			return &coreerrors.ValidationError{Field: col.field, Message: err.Error()}
		}
	}
	return nil
}

// ParseHexColor parses "#rgb" or "#rrggbb"
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// palette is ColorConfig resolved once per render
type palette struct {
	background      color.RGBA
	text            color.RGBA
	placeholder     color.RGBA
	placeholderText color.RGBA
	sourceFill      color.RGBA
	sourceStroke    color.RGBA
}

func (c ColorConfig) palette() palette {
	return palette{
		background:      hexOr(c.Background, color.RGBA{255, 255, 255, 255}),
		text:            hexOr(c.Text, color.RGBA{0, 0, 0, 255}),
		placeholder:     hexOr(c.Placeholder, color.RGBA{128, 128, 128, 255}),
		placeholderText: hexOr(c.PlaceholderText, color.RGBA{255, 255, 255, 255}),
		sourceFill:      hexOr(c.SourceFill, color.RGBA{255, 255, 255, 255}),
		sourceStroke:    hexOr(c.SourceStroke, color.RGBA{0, 0, 0, 255}),
	}
}

func hexOr(s string, def color.RGBA) color.RGBA {
	if c, err := ParseHexColor(s); err == nil {
		return c
	}
	return def
}
