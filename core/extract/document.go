// ABOUTME: Read-only document model over a goquery tree
// ABOUTME: Precomputes the document-order position of every image element

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// contentSelectors locate the article body, most specific first
var contentSelectors = []string{
	"article",
	".article-content",
	".content",
	".post-content",
	".entry-content",
	`[class*="content"]`,
	"main",
}

// Document is one parsed page. It is queried, never mutated.
type Document struct {
	doc       *goquery.Document
	images    *goquery.Selection
	positions map[*html.Node]int
}

// ParseHTML parses raw UTF-8 HTML into a Document
func ParseHTML(raw []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewDocument(doc), nil
}

// NewDocument wraps an already parsed goquery document
func NewDocument(doc *goquery.Document) *Document {
	images := doc.Find("img")
	positions := make(map[*html.Node]int, images.Length())
	for i, n := range images.Nodes {
		positions[n] = i
	}
	return &Document{doc: doc, images: images, positions: positions}
}

// Root returns the whole document as a selection
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Find runs a selector against the whole document
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Images returns every <img> element in document order
func (d *Document) Images() *goquery.Selection {
	return d.images
}

// Position returns the document-order index of an image element, or -1
func (d *Document) Position(img *goquery.Selection) int {
	if img == nil || img.Length() == 0 {
		return -1
	}
	if pos, ok := d.positions[img.Get(0)]; ok {
		return pos
	}
	return -1
}

// HTML renders the document back to markup
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// contentScope picks the article body. With requireImages the first selector
// that matches and holds at least one image wins and "body" is tried last;
// the fallback is the whole document. Without it the first matching selector
// wins and the fallback is <body>.
func (d *Document) contentScope(requireImages bool) *goquery.Selection {
	for _, selector := range contentSelectors {
		area := d.doc.Find(selector).First()
		if area.Length() == 0 {
			continue
		}
		if !requireImages || area.Find("img").Length() > 0 {
			return area
		}
	}
	body := d.doc.Find("body").First()
	if requireImages {
		if body.Length() > 0 && body.Find("img").Length() > 0 {
			return body
		}
		return d.doc.Selection
	}
	if body.Length() > 0 {
		return body
	}
	return d.doc.Selection
}

func text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
