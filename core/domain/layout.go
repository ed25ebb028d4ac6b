// ABOUTME: Render option and geometry types shared between the card service and the compositor
// ABOUTME: LayoutOptions are immutable per render call; RenderRegion is derived each render

package domain

// RenderMode selects how the image block is filled
type RenderMode int

const (
	// RenderModeSingle fills the image block with the primary image
	RenderModeSingle RenderMode = iota
	// RenderModeDual splits the image block into two editorial images
	RenderModeDual
)

// String returns the wire name of the mode
func (m RenderMode) String() string {
	if m == RenderModeDual {
		return "dual"
	}
	return "single"
}

// ImageSelection is a pair of 1-based editorial image indices
type ImageSelection struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// DefaultImageSelection is used in dual mode when the caller does not choose
func DefaultImageSelection() ImageSelection {
	return ImageSelection{First: 1, Second: 2}
}

// Overrides replaces extracted text with caller-edited text
type Overrides struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	AltText *string `json:"altText,omitempty"`
}

// LayoutOptions controls one render call
type LayoutOptions struct {
	ShowSource bool
	Mode       RenderMode
	Selection  *ImageSelection
	Overrides  Overrides
}

// RenderRegion is a rectangle on the canvas
type RenderRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bottom returns the y coordinate just below the region
func (r RenderRegion) Bottom() int {
	return r.Y + r.Height
}

// Right returns the x coordinate just right of the region
func (r RenderRegion) Right() int {
	return r.X + r.Width
}
