// ABOUTME: Article domain models produced by the extraction pipeline
// ABOUTME: Defines image candidates, the article summary and the sentinel values used on misses

package domain

// Sentinel values substituted when extraction finds nothing. Downstream layout
// always receives non-empty text.
const (
	SentinelTitle       = "title not found"
	SentinelContent     = "content not found"
	SentinelNoAltText   = "no alt text"
	SentinelNoImage     = "no image found or no alt text"
	SentinelImageFailed = "image load failed"
	SentinelNoImageData = "no image content"
)

// Formats used in dual-image mode; both take 1-based editorial indices
const (
	DualImageFailedFormat = "image %d load failed"
	DualAttributionFormat = "image %d and image %d"
)

// Strategy identifies which scoring tier selected the primary image
type Strategy int

const (
	// StrategyNone means no image could be selected
	StrategyNone Strategy = iota
	// StrategyFirstInScope takes the first editorial image inside the content scope
	StrategyFirstInScope
	// StrategyCharacteristic scores classified images by position, alt text, host and size
	StrategyCharacteristic
	// StrategyImproved scores every image on the page, classified or not
	StrategyImproved
)

// String returns the wire name of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyFirstInScope:
		return "first_in_scope"
	case StrategyCharacteristic:
		return "characteristic"
	case StrategyImproved:
		return "improved"
	default:
		return "none"
	}
}

// ImageCandidate is an image discovered on the page
type ImageCandidate struct {
	// URL is the absolute image URL
	URL string `json:"url"`

	// AltText is the raw text resolved by the alt-text cascade
	AltText string `json:"altText"`

	// Attribution is AltText after normalisation; this is what gets drawn
	Attribution string `json:"attribution"`

	// Position is the document-order index among all <img> elements
	Position int `json:"position"`

	// Score is attached by the relevance scorer
	Score float64 `json:"score"`
}

// HasImage reports whether the candidate points at an image
func (c ImageCandidate) HasImage() bool {
	return c.URL != ""
}

// NoImageCandidate returns the sentinel candidate used when nothing was found
func NoImageCandidate() ImageCandidate {
	return ImageCandidate{
		URL:         "",
		AltText:     SentinelNoImage,
		Attribution: SentinelNoImage,
		Position:    -1,
	}
}

// ArticleSummary is the sole output of extraction and the sole content input of layout
type ArticleSummary struct {
	// URL is the normalised page URL the summary was extracted from
	URL string `json:"url"`

	// Title is the headline; never empty
	Title string `json:"title"`

	// Content is the lead paragraph; never empty
	Content string `json:"content"`

	// Images are the editorial images in document order. Index i is
	// exposed to callers as "image i+1".
	Images []ImageCandidate `json:"images"`

	// Primary is the image chosen by the relevance scorer
	Primary ImageCandidate `json:"primary"`

	// Strategy records which scoring tier chose Primary
	Strategy Strategy `json:"-"`
}

// ImageAt returns the editorial image for a 1-based index
func (s *ArticleSummary) ImageAt(index int) (ImageCandidate, bool) {
	if index < 1 || index > len(s.Images) {
		return ImageCandidate{}, false
	}
	return s.Images[index-1], true
}
