package layout

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontRole names the typeface a piece of text is drawn with
type FontRole int

const (
	// FontRegular draws titles, content and placeholder labels
	FontRegular FontRole = iota
	// FontBold draws titles when the bold title option is set
	FontBold
	// FontSource draws the source attribution overlay
	FontSource
)

func (r FontRole) String() string {
	switch r {
	case FontBold:
		return "bold"
	case FontSource:
		return "source"
	default:
		return "regular"
	}
}

// Assets supplies fonts and the background to the compositor.
// Face must never return nil; a missing font falls back to a built-in one.
// Faces are not safe for concurrent use, so every call returns a new face.
// Background may return nil, in which case a solid canvas is used.
type Assets interface {
	Face(role FontRole, size float64) font.Face
	Background() image.Image
}

// BuiltinAssets draws every role with the Go regular font on a plain canvas
type BuiltinAssets struct{}

// Face implements Assets
func (BuiltinAssets) Face(_ FontRole, size float64) font.Face {
	return BuiltinFace(size)
}

// Background implements Assets
func (BuiltinAssets) Background() image.Image {
	return nil
}

var builtinFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// BuiltinFace returns the Go regular font at the given pixel size
func BuiltinFace(size float64) font.Face {
	f, err := builtinFont()
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
