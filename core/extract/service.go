// ABOUTME: Extraction service fetches an article page and summarises it
// ABOUTME: Pages are memoised in the injected cache so re-renders do not refetch

package extract

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"newscard-api/core/domain"
	coreerrors "newscard-api/core/errors"
	"newscard-api/core/interfaces"
)

// DefaultPageTTL is how long a fetched page stays in the cache
const DefaultPageTTL = 10 * time.Minute

// Service fetches pages and runs the extraction pipeline over them
type Service struct {
	deps    interfaces.Dependencies
	profile SiteProfile
	pageTTL time.Duration
}

// NewService creates a new extraction service
func NewService(deps interfaces.Dependencies, profile SiteProfile, pageTTL time.Duration) *Service {
	if pageTTL <= 0 {
		pageTTL = DefaultPageTTL
	}
	return &Service{
		deps:    deps,
		profile: profile,
		pageTTL: pageTTL,
	}
}

// Profile returns the site profile used for classification
func (s *Service) Profile() SiteProfile {
	return s.profile
}

// Extract fetches the page and returns its summary
func (s *Service) Extract(ctx context.Context, rawURL string) (*domain.ArticleSummary, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := s.Load(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	summary := Summarize(doc, pageURL, s.profile)
	s.deps.Log().Debug("Article extracted", map[string]interface{}{
		"url":      pageURL,
		"images":   len(summary.Images),
		"strategy": summary.Strategy.String(),
	})
	return summary, nil
}

// Load returns the parsed page, from the cache when possible
func (s *Service) Load(ctx context.Context, pageURL string) (*Document, error) {
	if s.deps.Pages == nil {
		return nil, errors.New("page fetcher not configured")
	}

	cacheKey := pageCacheKey(pageURL)
	if s.deps.Cache != nil {
		if body, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && len(body) > 0 {
			if doc, err := ParseHTML(body); err == nil {
				return doc, nil
			}
		}
	}

	body, err := s.deps.Pages.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := ParseHTML(body)
	if err != nil {
		return nil, coreerrors.WrapError(err, "parse page "+pageURL)
	}

	// Cache the page (ignore cache errors)
	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, cacheKey, body, s.pageTTL)
	}
	return doc, nil
}

// Summarize runs the whole pipeline over an already parsed page
func Summarize(doc *Document, pageURL string, profile SiteProfile) *domain.ArticleSummary {
	base := originOf(pageURL)
	selection := SelectPrimaryImage(doc, base, profile)

	images := CollectContentImages(doc, base, profile)
	if images == nil {
		images = []domain.ImageCandidate{}
	}

	return &domain.ArticleSummary{
		URL:      pageURL,
		Title:    ExtractTitle(doc),
		Content:  ExtractLeadParagraph(doc),
		Images:   images,
		Primary:  selection.Candidate,
		Strategy: selection.Strategy,
	}
}

// NormalizeURL trims the input and adds https:// when no scheme is given
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "URL cannot be empty"}
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "invalid URL format"}
	}
	return u.String(), nil
}

// originOf returns scheme://host of the page; relative image URLs resolve
// against it rather than against the page path.
func originOf(pageURL string) *url.URL {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

func pageCacheKey(pageURL string) string {
	return "page:" + pageURL
}
