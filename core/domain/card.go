// ABOUTME: Card domain model returned by the card service
// ABOUTME: Bundles the encoded image with the summary and render diagnostics

package domain

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RenderReport describes the geometry decisions taken during one render
type RenderReport struct {
	Title   RenderRegion `json:"title"`
	Content RenderRegion `json:"content"`
	Image   RenderRegion `json:"image"`
	Source  RenderRegion `json:"source"`

	TitleFontSize  float64 `json:"titleFontSize"`
	TitleLines     int     `json:"titleLines"`
	TitleStretched bool    `json:"titleStretched"`

	ContentLines      int  `json:"contentLines"`
	ContentLinesDrawn int  `json:"contentLinesDrawn"`
	ContentTruncated  bool `json:"contentTruncated"`

	// ReflowPasses counts cramped reflows; never more than one
	ReflowPasses int `json:"reflowPasses"`

	// SourceText is the attribution drawn over the image block, if any
	SourceText string `json:"sourceText,omitempty"`

	// Placeholders lists the labels drawn in place of missing images
	Placeholders []string `json:"placeholders,omitempty"`
}

// Card is a rendered news card
type Card struct {
	PNG         []byte
	Summary     ArticleSummary
	Mode        RenderMode
	Attribution string
	AccentColor *RGBColor
	Report      RenderReport
}
