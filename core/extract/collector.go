package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newscard-api/core/domain"
)

// denyPatterns reject decorative and social images by URL or alt text
var denyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`logo`),
	regexp.MustCompile(`icon`),
	regexp.MustCompile(`avatar`),
	regexp.MustCompile(`ad[^a-z]`),
	regexp.MustCompile(`banner`),
	regexp.MustCompile(`button`),
	regexp.MustCompile(`arrow`),
	regexp.MustCompile(`bg[^a-z]`),
	regexp.MustCompile(`background`),
	regexp.MustCompile(`_80x80`),
	regexp.MustCompile(`thumb`),
	regexp.MustCompile(`small`),
	regexp.MustCompile(`mini`),
	regexp.MustCompile(`facebook`),
	regexp.MustCompile(`twitter`),
	regexp.MustCompile(`instagram`),
	regexp.MustCompile(`youtube`),
	regexp.MustCompile(`share`),
	regexp.MustCompile(`social`),
}

var (
	sourceAttrs = []string{"src", "data-src", "data-lazy", "data-original"}
	srcsetAttrs = []string{"data-srcset", "srcset"}
)

const (
	minDescriptiveAlt = 10
	maxDescriptiveAlt = 200
)

// CollectContentImages returns the editorial images of the page in document
// order, deduplicated by URL. The 1-based index into the result is the
// editorial index used for image selection.
func CollectContentImages(doc *Document, base *url.URL, profile SiteProfile) []domain.ImageCandidate {
	images := doc.contentScope(true).Find("img")

	var found []domain.ImageCandidate
	seen := make(map[string]bool)
	add := func(img *goquery.Selection, src, alt string) {
		if seen[src] {
			return
		}
		seen[src] = true
		found = append(found, domain.ImageCandidate{
			URL:         src,
			AltText:     alt,
			Attribution: CleanAltText(alt, profile),
			Position:    doc.Position(img),
		})
	}

	images.Each(func(_ int, img *goquery.Selection) {
		src := ImageSource(img)
		if src == "" {
			return
		}
		src = ResolveURL(base, src)
		alt := ResolveAltText(img, profile)
		if IsContentImage(src, alt, profile) {
			add(img, src, alt)
		}
	})

	if len(found) > 0 || images.Length() == 0 {
		return found
	}

	// Nothing classified: accept any image served from the site itself
	images.Each(func(_ int, img *goquery.Selection) {
		src := ImageSource(img)
		if src == "" {
			return
		}
		src = ResolveURL(base, src)
		if profile.IsSiteImage(src) {
			add(img, src, ResolveAltText(img, profile))
		}
	})
	return found
}

// ImageSource returns the image URL as authored, preferring src over the
// lazy-loading attributes and finally the first srcset entry.
func ImageSource(img *goquery.Selection) string {
	for _, attr := range sourceAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	for _, attr := range srcsetAttrs {
		if v := firstSrcsetURL(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ResolveURL makes src absolute against base unless it already is
func ResolveURL(base *url.URL, src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// ResolveAltText walks the caption cascade: own alt, the enclosing figure's
// figcaption, a caption-like paragraph after the figure, then figcaption
// siblings of the image and of its parent.
func ResolveAltText(img *goquery.Selection, profile SiteProfile) string {
	if alt := strings.TrimSpace(img.AttrOr("alt", "")); alt != "" {
		return alt
	}

	parent := img.Parent()
	if parent.Length() == 0 {
		return ""
	}

	if goquery.NodeName(parent) == "figure" {
		if caption := text(parent.Find("figcaption").First()); caption != "" {
			return caption
		}
		if next := parent.NextAllFiltered("p").First(); next.Length() > 0 {
			style := next.AttrOr("style", "")
			t := text(next)
			centered := strings.Contains(style, "text-align:center") || strings.Contains(style, "text-align: center")
			if t != "" && (centered || containsAny(t, profile.CaptionKeywords)) {
				return t
			}
		}
	}

	if caption := text(img.NextAllFiltered("figcaption").First()); caption != "" {
		return caption
	}
	if caption := text(img.PrevAllFiltered("figcaption").First()); caption != "" {
		return caption
	}
	return text(parent.NextAllFiltered("figcaption").First())
}

// IsContentImage classifies an image as editorial. Deny patterns win over
// every allow rule.
func IsContentImage(src, alt string, profile SiteProfile) bool {
	srcLower, altLower := strings.ToLower(src), strings.ToLower(alt)
	for _, re := range denyPatterns {
		if re.MatchString(srcLower) || re.MatchString(altLower) {
			return false
		}
	}

	for _, indicator := range profile.ContentIndicators {
		if strings.Contains(alt, indicator) || strings.Contains(srcLower, strings.ToLower(indicator)) {
			return true
		}
	}

	if n := utf8.RuneCountInString(alt); alt != "" && n >= minDescriptiveAlt && n <= maxDescriptiveAlt {
		return true
	}
	return profile.IsTrustedHost(src)
}
