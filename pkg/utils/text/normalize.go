// ABOUTME: Text utilities for cleaning user and page supplied strings
// ABOUTME: Collapses whitespace runs and decodes HTML entities before layout

package text

import (
	"html"
	"strings"
	"unicode"
)

// NormalizeSpace trims the string and collapses every whitespace run to one space
func NormalizeSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Clean decodes HTML entities and normalises whitespace. Used on override text
// submitted through the API, which is frequently pasted from page markup.
func Clean(s string) string {
	return NormalizeSpace(html.UnescapeString(s))
}
