// ABOUTME: Card service turns an article URL into a rendered PNG card
// ABOUTME: Orchestrates extraction, image selection, concurrent image fetches and composition

package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"runtime"
	"strings"
	"sync"
	"time"

	"newscard-api/core/domain"
	coreerrors "newscard-api/core/errors"
	"newscard-api/core/extract"
	"newscard-api/core/interfaces"
	"newscard-api/core/layout"
	"newscard-api/core/workers"
)

// Config tunes the card service
type Config struct {
	// ImageTimeout bounds all image fetches of one render
	ImageTimeout time.Duration

	// BatchWorkers bounds concurrent renders in RenderBatch
	BatchWorkers int
}

// DefaultConfig returns the production settings
func DefaultConfig() Config {
	return Config{
		ImageTimeout: 10 * time.Second,
		BatchWorkers: runtime.NumCPU(),
	}
}

// Service renders cards
type Service struct {
	deps       interfaces.Dependencies
	extractor  *extract.Service
	compositor *layout.Compositor
	accent     interfaces.AccentColorService
	cfg        Config
}

// NewService creates a new card service
func NewService(deps interfaces.Dependencies, extractor *extract.Service, compositor *layout.Compositor, cfg Config) *Service {
	if cfg.ImageTimeout <= 0 {
		cfg.ImageTimeout = DefaultConfig().ImageTimeout
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultConfig().BatchWorkers
	}
	return &Service{
		deps:       deps,
		extractor:  extractor,
		compositor: compositor,
		cfg:        cfg,
	}
}

// SetAccentColorService enables accent color extraction for rendered cards
func (s *Service) SetAccentColorService(svc interfaces.AccentColorService) {
	s.accent = svc
}

// Preview extracts the article without rendering
func (s *Service) Preview(ctx context.Context, url string) (*domain.ArticleSummary, error) {
	return s.extractor.Extract(ctx, url)
}

// Render produces one card
func (s *Service) Render(ctx context.Context, req interfaces.CardRequest) (*domain.Card, error) {
	start := time.Now()

	summary, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	applyOverrides(summary, req.Options.Overrides)

	// Selection is validated before any image is fetched or pixel drawn
	input, err := planRender(summary, req.Options)
	if err != nil {
		return nil, err
	}

	s.fetchImages(ctx, input.Slots)

	canvas, report := s.compositor.Render(input)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, coreerrors.WrapError(err, "encode card")
	}

	card := &domain.Card{
		PNG:         buf.Bytes(),
		Summary:     *summary,
		Mode:        req.Options.Mode,
		Attribution: input.Attribution,
		Report:      report,
	}
	if report.SourceText != "" {
		card.Attribution = report.SourceText
	}

	if s.accent != nil {
		if slot, ok := firstLoaded(input.Slots); ok {
			if color, err := s.accent.ExtractColor(ctx, slot.URL, slot.Image); err == nil {
				card.AccentColor = color
			}
		}
	}

	s.deps.Log().Info("Card rendered", map[string]interface{}{
		"url":          summary.URL,
		"mode":         req.Options.Mode.String(),
		"strategy":     summary.Strategy.String(),
		"images":       len(summary.Images),
		"placeholders": len(report.Placeholders),
		"reflowed":     report.ReflowPasses > 0,
		"bytes":        len(card.PNG),
		"duration_ms":  time.Since(start).Milliseconds(),
	})
	return card, nil
}

// RenderBatch renders every request on a bounded worker pool; results keep request order
func (s *Service) RenderBatch(ctx context.Context, reqs []interfaces.CardRequest) []interfaces.BatchResult {
	if len(reqs) == 0 {
		return []interfaces.BatchResult{}
	}

	pool := workers.NewRenderWorker(s, workers.WorkerConfig{
		MaxWorkers: min(s.cfg.BatchWorkers, len(reqs)),
		QueueSize:  len(reqs),
	})
	if err := pool.Start(); err != nil {
		results := make([]interfaces.BatchResult, len(reqs))
		for i, req := range reqs {
			results[i] = interfaces.BatchResult{URL: req.URL, Err: err}
		}
		return results
	}
	defer func() { _ = pool.Stop() }()

	results := pool.RenderAll(ctx, reqs)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.deps.Log().Info("Batch rendered", map[string]interface{}{
		"requested": len(reqs),
		"failed":    failed,
	})
	return results
}

// applyOverrides replaces extracted text. Blank title or content overrides
// are ignored so the card never loses its headline or lead.
func applyOverrides(summary *domain.ArticleSummary, o domain.Overrides) {
	if o.Title != nil && strings.TrimSpace(*o.Title) != "" {
		summary.Title = *o.Title
	}
	if o.Content != nil && strings.TrimSpace(*o.Content) != "" {
		summary.Content = *o.Content
	}
}

// planRender resolves the image slots and the attribution for the requested mode
func planRender(summary *domain.ArticleSummary, opts domain.LayoutOptions) (layout.RenderInput, error) {
	input := layout.RenderInput{
		Title:      summary.Title,
		Content:    summary.Content,
		Mode:       opts.Mode,
		ShowSource: opts.ShowSource,
	}

	if opts.Mode != domain.RenderModeDual {
		input.Slots = []layout.Slot{{URL: summary.Primary.URL}}
		input.Attribution = summary.Primary.Attribution
		if opts.Overrides.AltText != nil {
			input.Attribution = *opts.Overrides.AltText
		}
		return input, nil
	}

	sel := domain.DefaultImageSelection()
	if opts.Selection != nil {
		sel = *opts.Selection
	}
	if err := ValidateSelection(sel, len(summary.Images)); err != nil {
		return layout.RenderInput{}, err
	}

	first, _ := summary.ImageAt(sel.First)
	second, _ := summary.ImageAt(sel.Second)
	input.Slots = []layout.Slot{
		{Index: sel.First, URL: first.URL},
		{Index: sel.Second, URL: second.URL},
	}
	input.Attribution = first.Attribution
	if opts.Overrides.AltText != nil {
		input.Attribution = *opts.Overrides.AltText
	}
	return input, nil
}

// ValidateSelection checks a pair of 1-based editorial indices against the
// number of images available.
func ValidateSelection(sel domain.ImageSelection, available int) error {
	for _, idx := range []int{sel.First, sel.Second} {
		if idx < 1 {
			return &coreerrors.ValidationError{
				Field:   "selection",
				Message: fmt.Sprintf("image index must be at least 1, got %d", idx),
			}
		}
	}
	if requested := max(sel.First, sel.Second); requested > available {
		return &coreerrors.InvalidSelectionError{Requested: requested, Available: available}
	}
	return nil
}

// fetchImages loads every slot concurrently; failures leave Image nil
func (s *Service) fetchImages(ctx context.Context, slots []layout.Slot) {
	if s.deps.Images == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ImageTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for i := range slots {
		if slots[i].URL == "" {
			continue
		}
		wg.Add(1)
		go func(slot *layout.Slot) {
			defer wg.Done()
			slot.Image = s.deps.Images.FetchImage(ctx, slot.URL)
			if slot.Image == nil {
				s.deps.Log().Debug("Image unavailable, drawing placeholder", map[string]interface{}{
					"url": slot.URL,
				})
			}
		}(&slots[i])
	}
	wg.Wait()
}

func firstLoaded(slots []layout.Slot) (layout.Slot, bool) {
	for _, slot := range slots {
		if slot.Image != nil {
			return slot, true
		}
	}
	return layout.Slot{}, false
}

// Decode is a convenience for callers holding a rendered card
func Decode(c *domain.Card) (image.Image, error) {
	return png.Decode(bytes.NewReader(c.PNG))
}
