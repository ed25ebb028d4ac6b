// ABOUTME: Card handlers for the Huma API
// ABOUTME: Renders cards as PNG, previews extraction results and runs batch conversions

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"newscard-api/core/domain"
	"newscard-api/core/interfaces"
	"newscard-api/pkg/featureflags"
)

const maxBatchURLs = 50

// CardHandler handles card HTTP requests
type CardHandler struct {
	cards interfaces.CardService
	flags featureflags.Manager
}

// NewCardHandler creates a new card handler
func NewCardHandler(cards interfaces.CardService, flags featureflags.Manager) *CardHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &CardHandler{cards: cards, flags: flags}
}

// RegisterRoutes registers all card routes
func (h *CardHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "renderCard",
		Method:      http.MethodPost,
		Path:        "/cards",
		Summary:     "Render a news card",
		Description: "Fetches the article, extracts title, lead paragraph and images, and returns the card as PNG",
		Tags:        []string{"Cards"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Rendered card",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, h.RenderCard)

	huma.Register(api, huma.Operation{
		OperationID: "previewCard",
		Method:      http.MethodPost,
		Path:        "/cards/preview",
		Summary:     "Preview extraction",
		Description: "Returns the extracted title, lead paragraph and editorial images so a caller can pick images and edit text before rendering",
		Tags:        []string{"Cards"},
	}, h.PreviewCard)

	huma.Register(api, huma.Operation{
		OperationID: "renderCardBatch",
		Method:      http.MethodPost,
		Path:        "/cards/batch",
		Summary:     "Render many cards",
		Description: "Renders one single-image card per URL; failures are reported per URL",
		Tags:        []string{"Cards"},
	}, h.RenderBatch)
}

// CardRequestBody is the render request
type CardRequestBody struct {
	URL        string  `json:"url" minLength:"1" doc:"Article URL; https:// is assumed when no scheme is given"`
	ShowSource bool    `json:"showSource,omitempty" doc:"Draw the image attribution over the image block"`
	DualImage  bool    `json:"dualImage,omitempty" doc:"Fill the image block with two editorial images"`
	Image1     int     `json:"image1,omitempty" doc:"1-based index of the left image in dual mode (default 1)"`
	Image2     int     `json:"image2,omitempty" doc:"1-based index of the right image in dual mode (default 2)"`
	Title      *string `json:"title,omitempty" doc:"Replaces the extracted title"`
	Content    *string `json:"content,omitempty" doc:"Replaces the extracted lead paragraph"`
	AltText    *string `json:"altText,omitempty" doc:"Replaces the attribution text"`
}

// toCardRequest maps the wire request to the service request
func (b CardRequestBody) toCardRequest() interfaces.CardRequest {
	opts := domain.LayoutOptions{
		ShowSource: b.ShowSource,
		Mode:       domain.RenderModeSingle,
		Overrides: domain.Overrides{
			Title:   b.Title,
			Content: b.Content,
			AltText: b.AltText,
		},
	}
	if b.DualImage {
		opts.Mode = domain.RenderModeDual
		if b.Image1 != 0 || b.Image2 != 0 {
			sel := domain.DefaultImageSelection()
			if b.Image1 != 0 {
				sel.First = b.Image1
			}
			if b.Image2 != 0 {
				sel.Second = b.Image2
			}
			opts.Selection = &sel
		}
	}
	return interfaces.CardRequest{URL: b.URL, Options: opts}
}

// RenderCardInput defines the input for the RenderCard operation
type RenderCardInput struct {
	Body CardRequestBody
}

// RenderCardOutput is the PNG plus a few render facts as headers
type RenderCardOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Strategy     string `header:"X-Card-Strategy"`
	ImageCount   string `header:"X-Card-Image-Count"`
	AccentColor  string `header:"X-Card-Accent-Color"`
	Body         []byte
}

// RenderCard handles POST /cards
func (h *CardHandler) RenderCard(ctx context.Context, input *RenderCardInput) (*RenderCardOutput, error) {
	card, err := h.cards.Render(ctx, input.Body.toCardRequest())
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &RenderCardOutput{
		ContentType:  "image/png",
		CacheControl: "no-store",
		Strategy:     card.Summary.Strategy.String(),
		ImageCount:   strconv.Itoa(len(card.Summary.Images)),
		Body:         card.PNG,
	}
	if c := card.AccentColor; c != nil {
		out.AccentColor = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return out, nil
}

// PreviewInput defines the input for the PreviewCard operation
type PreviewInput struct {
	Body struct {
		URL string `json:"url" minLength:"1" doc:"Article URL"`
	}
}

// PreviewImage is one editorial image with its 1-based index
type PreviewImage struct {
	Index       int    `json:"index" doc:"1-based index used by image1 and image2"`
	URL         string `json:"url"`
	AltText     string `json:"altText"`
	Attribution string `json:"attribution"`
}

// PreviewResponse is the extraction result
type PreviewResponse struct {
	URL      string         `json:"url"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Images   []PreviewImage `json:"images"`
	Primary  PreviewImage   `json:"primary" doc:"Image chosen for single-image cards; index 0 when it is not an editorial image"`
	Strategy string         `json:"strategy" doc:"Scoring tier that chose the primary image"`
}

// PreviewOutput defines the output for the PreviewCard operation
type PreviewOutput struct {
	Body PreviewResponse
}

// PreviewCard handles POST /cards/preview
func (h *CardHandler) PreviewCard(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	summary, err := h.cards.Preview(ctx, input.Body.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &PreviewOutput{Body: toPreviewResponse(summary)}, nil
}

func toPreviewResponse(s *domain.ArticleSummary) PreviewResponse {
	resp := PreviewResponse{
		URL:      s.URL,
		Title:    s.Title,
		Content:  s.Content,
		Images:   make([]PreviewImage, 0, len(s.Images)),
		Strategy: s.Strategy.String(),
		Primary: PreviewImage{
			URL:         s.Primary.URL,
			AltText:     s.Primary.AltText,
			Attribution: s.Primary.Attribution,
		},
	}
	for i, img := range s.Images {
		resp.Images = append(resp.Images, PreviewImage{
			Index:       i + 1,
			URL:         img.URL,
			AltText:     img.AltText,
			Attribution: img.Attribution,
		})
		if img.URL == s.Primary.URL && resp.Primary.Index == 0 {
			resp.Primary.Index = i + 1
		}
	}
	return resp
}

// BatchInput defines the input for the RenderBatch operation
type BatchInput struct {
	Body struct {
		URLs       []string `json:"urls" minItems:"1" maxItems:"50" doc:"Article URLs"`
		ShowSource bool     `json:"showSource,omitempty"`
	}
}

// BatchItem is the outcome for one URL
type BatchItem struct {
	URL    string `json:"url"`
	Status string `json:"status" enum:"ok,error"`
	PNG    []byte `json:"png,omitempty" doc:"Base64-encoded PNG"`
	Error  string `json:"error,omitempty"`
}

// BatchOutput defines the output for the RenderBatch operation
type BatchOutput struct {
	Body struct {
		Results []BatchItem `json:"results"`
	}
}

// RenderBatch handles POST /cards/batch
func (h *CardHandler) RenderBatch(ctx context.Context, input *BatchInput) (*BatchOutput, error) {
	if !h.flags.IsEnabled(ctx, featureflags.BatchEnabled) {
		return nil, huma.Error404NotFound("batch conversion is disabled")
	}
	if len(input.Body.URLs) > maxBatchURLs {
		return nil, huma.Error400BadRequest(fmt.Sprintf("at most %d URLs per batch", maxBatchURLs))
	}

	reqs := make([]interfaces.CardRequest, len(input.Body.URLs))
	for i, url := range input.Body.URLs {
		reqs[i] = interfaces.CardRequest{
			URL:     url,
			Options: domain.LayoutOptions{ShowSource: input.Body.ShowSource},
		}
	}

	out := &BatchOutput{}
	out.Body.Results = make([]BatchItem, 0, len(reqs))
	for _, r := range h.cards.RenderBatch(ctx, reqs) {
		item := BatchItem{URL: r.URL, Status: "ok"}
		if r.Err != nil {
			item.Status = "error"
			item.Error = r.Err.Error()
		} else if r.Card != nil {
			item.PNG = r.Card.PNG
		}
		out.Body.Results = append(out.Body.Results, item)
	}
	return out, nil
}
