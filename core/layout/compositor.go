// ABOUTME: Layout compositor draws a news card onto a fixed-size canvas
// ABOUTME: Title, lead paragraph and image block are laid out top to bottom with one bounded reflow

package layout

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"newscard-api/core/domain"
	"newscard-api/pkg/utils/text"
)

const (
	maxTitleLines        = 2
	placeholderLabelRise = 20
	ellipsis             = "..."
)

// Slot is one image position in the image block
type Slot struct {
	// Index is the 1-based editorial index; zero in single mode
	Index int

	// URL is empty when no image was found at all
	URL string

	// Image is nil when the image could not be fetched or decoded
	Image image.Image
}

// RenderInput is everything one render depends on besides the config and assets
type RenderInput struct {
	Title       string
	Content     string
	Attribution string
	Mode        domain.RenderMode
	ShowSource  bool

	// Slots holds one slot in single mode and two in dual mode
	Slots []Slot
}

// Compositor renders cards. It holds no mutable state and is safe for
// concurrent use when its Assets are.
type Compositor struct {
	cfg    Config
	assets Assets
}

// NewCompositor creates a compositor; nil assets means BuiltinAssets
func NewCompositor(cfg Config, assets Assets) *Compositor {
	if assets == nil {
		assets = BuiltinAssets{}
	}
	return &Compositor{cfg: cfg, assets: assets}
}

// Config returns the layout configuration
func (c *Compositor) Config() Config {
	return c.cfg
}

// Render draws the card and reports the geometry it settled on
func (c *Compositor) Render(in RenderInput) (*image.RGBA, domain.RenderReport) {
	r := &render{
		cfg:    c.cfg,
		assets: c.assets,
		colors: c.cfg.Colors.palette(),
		in:     in,
	}
	r.in.Title = text.NormalizeSpace(in.Title)
	r.in.Content = text.NormalizeSpace(in.Content)

	r.init()
	r.layTitle()
	r.layContent()
	r.computeImageArea()
	if r.cramped() {
		r.reflow()
	}
	r.compositeImages()
	r.drawSource()
	r.advance(stageDone)

	return r.canvas, r.report
}

type stage int

const (
	stageInit stage = iota
	stageTitleLaid
	stageContentLaid
	stageImageAreaComputed
	stageCrampedReflow
	stageImagesComposited
	stageSourceTextDrawn
	stageDone
)

// render is the state of a single Render call
type render struct {
	cfg    Config
	assets Assets
	colors palette
	in     RenderInput

	stage        stage
	canvas       *image.RGBA
	currentY     int
	contentLines []string
	imageHeight  int
	report       domain.RenderReport
}

func (r *render) advance(to stage) {
	if to > r.stage {
		r.stage = to
	}
}

func (r *render) titleRole() FontRole {
	if r.cfg.Title.Bold {
		return FontBold
	}
	return FontRegular
}

// textLeft is where title and content lines start
func (r *render) textLeft() int {
	return r.cfg.Canvas.WhiteAreaLeft + r.cfg.Title.HorizontalPadding/2
}

// textWidth is the wrap width for title and content
func (r *render) textWidth() int {
	return r.cfg.Canvas.WhiteAreaWidth - r.cfg.Title.HorizontalPadding
}

func (r *render) init() {
	cv := r.cfg.Canvas
	r.canvas = image.NewRGBA(image.Rect(0, 0, cv.Width, cv.Height))

	bg := r.assets.Background()
	switch {
	case bg == nil:
		draw.Draw(r.canvas, r.canvas.Bounds(), image.NewUniform(r.colors.background), image.Point{}, draw.Src)
	case bg.Bounds().Dx() == cv.Width && bg.Bounds().Dy() == cv.Height:
		draw.Draw(r.canvas, r.canvas.Bounds(), bg, bg.Bounds().Min, draw.Src)
	default:
		draw.CatmullRom.Scale(r.canvas, r.canvas.Bounds(), bg, bg.Bounds(), draw.Src, nil)
	}

	r.currentY = cv.WhiteAreaTop
	r.stage = stageInit
}

func (r *render) layTitle() {
	cv, tc := r.cfg.Canvas, r.cfg.Title
	face := r.assets.Face(r.titleRole(), float64(tc.BaseFontSize))
	lines := WrapText(face, r.in.Title, r.textWidth())

	r.report.TitleFontSize = float64(tc.BaseFontSize)
	if len(lines) == 1 {
		r.laySingleLineTitle(lines[0], face)
		r.report.TitleLines = 1
	} else {
		y := float64(r.currentY + tc.VerticalOffsetMultiline)
		step := float64(tc.BaseFontSize) * tc.LineHeightMultiplier
		drawn := lines[:min(len(lines), maxTitleLines)]
		for _, line := range drawn {
			drawText(r.canvas, face, float64(r.textLeft()), y, line, r.colors.text)
			y += step
		}
		r.report.TitleLines = len(drawn)
	}

	r.report.Title = domain.RenderRegion{X: cv.WhiteAreaLeft, Y: r.currentY, Width: cv.WhiteAreaWidth, Height: cv.HeaderHeight}
	r.currentY += cv.HeaderHeight
	r.advance(stageTitleLaid)
}

// laySingleLineTitle grows a short title toward the full width, then
// stretches it vertically through an off-screen bitmap.
func (r *render) laySingleLineTitle(line string, baseFace font.Face) {
	cv, tc, sc := r.cfg.Canvas, r.cfg.Title, r.cfg.Title.SingleLine

	w, _ := Measure(baseFace, line)
	size := FitSingleLine(w, r.textWidth(), sc.FillPercentage, tc.BaseFontSize, tc.MaxFontSize)
	face := baseFace
	if size != tc.BaseFontSize {
		face = r.assets.Face(r.titleRole(), float64(size))
	}
	r.report.TitleFontSize = float64(size)

	tw, th := Measure(face, line)
	if th <= 0 {
		x := cv.WhiteAreaLeft + floorDiv(cv.WhiteAreaWidth-tw, 2)
		y := r.currentY + sc.VerticalOffset + floorDiv(cv.HeaderHeight-th, 2)
		drawText(r.canvas, face, float64(x), float64(y), line, r.colors.text)
		return
	}

	target := int(float64(th) * sc.VerticalStretchFactor)
	target = min(target, int(float64(cv.HeaderHeight)*sc.MaxStretchFactor))
	target = max(target, 1)

	off := image.NewRGBA(image.Rect(0, 0, tw+sc.TempPaddingH, th+sc.TempPaddingV))
	drawInk(off, face, sc.TempPaddingH/2, sc.TempPaddingV/2, line, r.colors.text)

	stretched := image.NewRGBA(image.Rect(0, 0, off.Bounds().Dx(), target+sc.TempPaddingV))
	draw.CatmullRom.Scale(stretched, stretched.Bounds(), off, off.Bounds(), draw.Src, nil)

	x := cv.WhiteAreaLeft + floorDiv(cv.WhiteAreaWidth-stretched.Bounds().Dx(), 2)
	y := r.currentY + sc.VerticalOffset + floorDiv(cv.HeaderHeight-stretched.Bounds().Dy(), 2)
	draw.Draw(r.canvas, stretched.Bounds().Add(image.Pt(x, y)), stretched, image.Point{}, draw.Over)
	r.report.TitleStretched = true
}

func (r *render) layContent() {
	cv, cc := r.cfg.Canvas, r.cfg.Content
	face := r.assets.Face(FontRegular, float64(cc.FontSize))
	r.contentLines = WrapText(face, r.in.Content, r.textWidth())

	height := cc.TopPadding + len(r.contentLines)*cc.LineHeight + cc.BottomPadding
	r.drawContentLines(face, r.contentLines, r.currentY)

	r.report.Content = domain.RenderRegion{X: cv.WhiteAreaLeft, Y: r.currentY, Width: cv.WhiteAreaWidth, Height: height}
	r.report.ContentLines = len(r.contentLines)
	r.report.ContentLinesDrawn = len(r.contentLines)
	r.currentY += height
	r.advance(stageContentLaid)
}

func (r *render) drawContentLines(face font.Face, lines []string, top int) int {
	cc := r.cfg.Content
	y := top + cc.TopPadding
	for _, line := range lines {
		drawText(r.canvas, face, float64(r.textLeft()), float64(y), line, r.colors.text)
		y += cc.LineHeight
	}
	return y
}

func (r *render) computeImageArea() {
	cv := r.cfg.Canvas
	r.currentY += cv.ContentImageGap
	remaining := cv.WhiteAreaTop + cv.WhiteAreaHeight - r.currentY
	r.imageHeight = max(r.cfg.Image.MinHeight, remaining)
	r.advance(stageImageAreaComputed)
}

func (r *render) cramped() bool {
	return r.report.ReflowPasses == 0 && r.imageHeight < r.cfg.Image.MinHeightForFullContent
}

// reflow redraws the content truncated to the cramped line budget. It runs
// at most once per render and the resulting image height is final.
func (r *render) reflow() {
	cv, cc := r.cfg.Canvas, r.cfg.Content
	face := r.assets.Face(FontRegular, float64(cc.FontSize))

	kept := min(len(r.contentLines), cc.MaxLinesWhenCramped)
	height := cc.TopPadding + kept*cc.LineHeight + cc.BottomPadding

	top := cv.WhiteAreaTop + cv.HeaderHeight
	area := image.Rect(cv.WhiteAreaLeft, top, cv.WhiteAreaLeft+cv.WhiteAreaWidth+1, cv.WhiteAreaTop+cv.WhiteAreaHeight+1)
	draw.Draw(r.canvas, area, image.NewUniform(r.colors.background), image.Point{}, draw.Src)

	y := r.drawContentLines(face, r.contentLines[:kept], top)
	if len(r.contentLines) > kept {
		drawText(r.canvas, face, float64(r.textLeft()), float64(y), ellipsis, r.colors.text)
		r.report.ContentTruncated = true
	}

	r.currentY = top + height + cv.ContentImageGap
	r.imageHeight = max(cv.WhiteAreaTop+cv.WhiteAreaHeight-r.currentY, 1)

	r.report.Content = domain.RenderRegion{X: cv.WhiteAreaLeft, Y: top, Width: cv.WhiteAreaWidth, Height: height}
	r.report.ContentLinesDrawn = kept
	r.report.ReflowPasses++
	r.advance(stageCrampedReflow)
}

func (r *render) imageRegion() domain.RenderRegion {
	cv := r.cfg.Canvas
	return domain.RenderRegion{X: cv.WhiteAreaLeft, Y: r.currentY, Width: cv.WhiteAreaWidth, Height: r.imageHeight}
}

func (r *render) compositeImages() {
	region := r.imageRegion()
	r.report.Image = region

	if r.in.Mode == domain.RenderModeDual {
		r.compositeDual(region)
	} else {
		r.compositeSingle(region)
	}
	r.advance(stageImagesComposited)
}

func (r *render) compositeSingle(region domain.RenderRegion) {
	var slot Slot
	if len(r.in.Slots) > 0 {
		slot = r.in.Slots[0]
	}

	switch {
	case slot.URL == "":
		r.placeholderCentered(region, domain.SentinelNoImageData)
	case slot.Image == nil:
		r.placeholderCentered(region, domain.SentinelImageFailed)
	default:
		fill(r.canvas, region, slot.Image)
	}
}

func (r *render) compositeDual(region domain.RenderRegion) {
	gap := r.cfg.Image.DualGap
	width := (region.Width - gap) / 2
	halves := []domain.RenderRegion{
		{X: region.X, Y: region.Y, Width: width, Height: region.Height},
		{X: region.X + width + gap, Y: region.Y, Width: width, Height: region.Height},
	}

	for i, half := range halves {
		var slot Slot
		if i < len(r.in.Slots) {
			slot = r.in.Slots[i]
		}
		if slot.Image == nil {
			r.placeholderCorner(half, fmt.Sprintf(domain.DualImageFailedFormat, slot.Index))
			continue
		}
		fill(r.canvas, half, slot.Image)
	}
}

// fill scales img to exactly cover region; aspect ratio is not preserved
func fill(dst *image.RGBA, region domain.RenderRegion, img image.Image) {
	draw.CatmullRom.Scale(dst, rect(region), img, img.Bounds(), draw.Src, nil)
}

func (r *render) placeholderCentered(region domain.RenderRegion, label string) {
	draw.Draw(r.canvas, rect(region), image.NewUniform(r.colors.placeholder), image.Point{}, draw.Src)

	face := r.assets.Face(FontRegular, float64(r.cfg.Image.PlaceholderFontSize))
	w, _ := Measure(face, label)
	x := region.X + floorDiv(region.Width-w, 2)
	y := region.Y + region.Height/2 - placeholderLabelRise
	drawText(r.canvas, face, float64(x), float64(y), label, r.colors.placeholderText)
	r.report.Placeholders = append(r.report.Placeholders, label)
}

func (r *render) placeholderCorner(region domain.RenderRegion, label string) {
	ic := r.cfg.Image
	draw.Draw(r.canvas, rect(region), image.NewUniform(r.colors.placeholder), image.Point{}, draw.Src)

	face := r.assets.Face(FontRegular, float64(ic.DualPlaceholderFontSize))
	x := region.X + ic.DualPlaceholderInset
	y := region.Y + ic.DualPlaceholderInset
	drawText(r.canvas, face, float64(x), float64(y), label, r.colors.placeholderText)
	r.report.Placeholders = append(r.report.Placeholders, label)
}

// attribution picks the overlay text, or "" when nothing should be drawn
func (r *render) attribution() string {
	alt := strings.TrimSpace(r.in.Attribution)

	if r.in.Mode == domain.RenderModeDual {
		if alt == "" || alt == domain.SentinelNoAltText || alt == domain.SentinelNoImage {
			first, second := 0, 0
			if len(r.in.Slots) > 1 {
				first, second = r.in.Slots[0].Index, r.in.Slots[1].Index
			}
			return fmt.Sprintf(domain.DualAttributionFormat, first, second)
		}
		return alt
	}

	if alt == domain.SentinelNoImage {
		return ""
	}
	if alt == "" {
		return domain.SentinelNoAltText
	}
	return alt
}

// drawSource stamps the attribution bottom-right of the image block, with
// an outline drawn at every offset within the stroke width.
func (r *render) drawSource() {
	defer r.advance(stageSourceTextDrawn)
	if !r.in.ShowSource {
		return
	}
	label := r.attribution()
	if label == "" {
		return
	}

	ic := r.cfg.Image
	region := r.imageRegion()
	face := r.assets.Face(FontSource, float64(ic.SourceFontSize))
	w, h := Measure(face, label)

	x := region.Right() - ic.SourceMarginH - w
	y := region.Bottom() - ic.SourceMarginV - h

	stroke := ic.SourceStrokeWidth
	for dx := -stroke; dx <= stroke; dx++ {
		for dy := -stroke; dy <= stroke; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawInk(r.canvas, face, x+dx, y+dy, label, r.colors.sourceStroke)
		}
	}
	drawInk(r.canvas, face, x, y, label, r.colors.sourceFill)

	r.report.SourceText = label
	r.report.Source = domain.RenderRegion{X: x, Y: y, Width: w, Height: h}
}

// drawText draws s with the top of the font's ascent at y
func drawText(dst draw.Image, face font.Face, x, y float64, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// drawInk draws s so that its ink box starts exactly at (x, y)
func drawInk(dst draw.Image, face font.Face, x, y int, s string, c color.Color) {
	b := inkBounds(face, s)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x) - b.Min.X, Y: fixed.I(y) - b.Min.Y},
	}
	d.DrawString(s)
}

func rect(r domain.RenderRegion) image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}
