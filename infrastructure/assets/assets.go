// ABOUTME: File-backed fonts and background for the card compositor
// ABOUTME: Missing or unreadable assets are logged and replaced by built-in fallbacks

package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"

	"newscard-api/core/interfaces"
	"newscard-api/core/layout"
)

// typeface builds faces of any size from a parsed font file
type typeface interface {
	newFace(size float64) (font.Face, error)
}

type trueType struct{ f *truetype.Font }

func (t trueType) newFace(size float64) (font.Face, error) {
	return truetype.NewFace(t.f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type openType struct{ f *opentype.Font }

func (o openType) newFace(size float64) (font.Face, error) {
	return opentype.NewFace(o.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Provider implements layout.Assets. Parsed fonts are shared; faces are
// created per call because they carry glyph caches that are not goroutine-safe.
type Provider struct {
	fonts      map[layout.FontRole]typeface
	background image.Image
	logger     interfaces.Logger
}

// Load reads the fonts and background named in cfg. It never fails: each
// missing asset produces a warning and a fallback.
func Load(cfg layout.Config, logger interfaces.Logger) *Provider {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	p := &Provider{
		fonts:  make(map[layout.FontRole]typeface),
		logger: logger,
	}

	paths := map[layout.FontRole]string{
		layout.FontRegular: cfg.Title.FontRegular,
		layout.FontBold:    cfg.Title.FontBold,
		layout.FontSource:  cfg.Image.SourceFontPath,
	}
	for role, path := range paths {
		tf, err := loadTypeface(path)
		if err != nil {
			logger.Warn("Font asset unavailable, using built-in font", map[string]interface{}{
				"role":  role.String(),
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		p.fonts[role] = tf
	}

	bg, err := loadBackground(cfg.Canvas.BackgroundPath, cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		logger.Warn("Background asset unavailable, using solid canvas", map[string]interface{}{
			"path":  cfg.Canvas.BackgroundPath,
			"error": err.Error(),
		})
	}
	p.background = bg

	return p
}

// Face implements layout.Assets
func (p *Provider) Face(role layout.FontRole, size float64) font.Face {
	tf, ok := p.fonts[role]
	if !ok {
		return layout.BuiltinFace(size)
	}
	face, err := tf.newFace(size)
	if err != nil {
		p.logger.Warn("Font face creation failed, using built-in font", map[string]interface{}{
			"role":  role.String(),
			"size":  size,
			"error": err.Error(),
		})
		return layout.BuiltinFace(size)
	}
	return face
}

// Background implements layout.Assets
func (p *Provider) Background() image.Image {
	return p.background
}

// HasFont reports whether role is served from a file rather than the fallback
func (p *Provider) HasFont(role layout.FontRole) bool {
	_, ok := p.fonts[role]
	return ok
}

func loadTypeface(path string) (typeface, error) {
	if path == "" {
		return nil, fmt.Errorf("no font configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection is empty")
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		return openType{f}, nil
	case ".ttf":
		// freetype handles classic TrueType outlines; anything it rejects
		// (CFF outlines in a .ttf) goes through the OpenType parser.
		if f, err := truetype.Parse(data); err == nil {
			return trueType{f}, nil
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return openType{f}, nil
}

// loadBackground decodes the background and scales it to the canvas
func loadBackground(path string, width, height int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no background configured")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}

	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
