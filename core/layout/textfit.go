package layout

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measure returns the ink box size of s, in pixels
func Measure(face font.Face, s string) (width, height int) {
	b := inkBounds(face, s)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

func inkBounds(face font.Face, s string) fixed.Rectangle26_6 {
	if s == "" {
		return fixed.Rectangle26_6{}
	}
	b, _ := font.BoundString(face, s)
	return b
}

// WrapText breaks text into lines no wider than maxWidth, one character at a
// time. A single character wider than maxWidth still gets its own line.
func WrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string
	current := ""
	for _, r := range text {
		candidate := current + string(r)
		if w, _ := Measure(face, candidate); w <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = string(r)
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// FitSingleLine returns the font size that makes a line of textWidth pixels
// (measured at baseSize) fill fill*available pixels, capped at maxSize.
// Lines already wide enough keep baseSize.
func FitSingleLine(textWidth, available int, fill float64, baseSize, maxSize int) int {
	target := float64(available) * fill
	if textWidth <= 0 || float64(textWidth) >= target {
		return baseSize
	}
	size := int(float64(baseSize) * target / float64(textWidth))
	return min(size, maxSize)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
