package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newscard-api/core/domain"
	coreerrors "newscard-api/core/errors"
	"newscard-api/core/interfaces"
)

const articleURL = "https://www.ctinews.com/news/items/123"

var (
	articleTitle   = strings.Repeat("颱", 20)
	articleContent = strings.Repeat("雨", 80)
	articlePage    = `<html><head><title>ignored | CTi</title></head><body>
		<h1>` + articleTitle + `</h1>
		<p>` + articleContent + `</p>
		<article><img src="https://storage.ctinews.com/compression/files/cut-1.jpg" alt="（資料照／中天新聞）"></article>
	</body></html>`
)

func TestService_Extract(t *testing.T) {
	pages := &mockPageFetcher{pages: map[string]string{articleURL: articlePage}}
	svc := NewService(interfaces.Dependencies{Pages: pages}, DefaultSiteProfile(), 0)

	summary, err := svc.Extract(context.Background(), articleURL)
	require.NoError(t, err)

	assert.Equal(t, articleURL, summary.URL)
	assert.Equal(t, articleTitle, summary.Title)
	assert.Equal(t, articleContent, summary.Content)
	require.Len(t, summary.Images, 1)
	assert.Equal(t, "https://storage.ctinews.com/compression/files/cut-1.jpg", summary.Images[0].URL)
	assert.Equal(t, "資料照／中天新聞", summary.Images[0].Attribution)
	assert.Equal(t, summary.Images[0].URL, summary.Primary.URL)
	assert.Equal(t, domain.StrategyFirstInScope, summary.Strategy)
}

func TestService_Extract_AddsScheme(t *testing.T) {
	pages := &mockPageFetcher{pages: map[string]string{articleURL: articlePage}}
	svc := NewService(interfaces.Dependencies{Pages: pages}, DefaultSiteProfile(), 0)

	summary, err := svc.Extract(context.Background(), "  www.ctinews.com/news/items/123 ")
	require.NoError(t, err)
	assert.Equal(t, articleURL, summary.URL)
}

func TestService_Extract_UsesPageCache(t *testing.T) {
	pages := &mockPageFetcher{pages: map[string]string{articleURL: articlePage}}
	cache := newMockCache()
	svc := NewService(interfaces.Dependencies{Pages: pages, Cache: cache}, DefaultSiteProfile(), 0)

	first, err := svc.Extract(context.Background(), articleURL)
	require.NoError(t, err)
	second, err := svc.Extract(context.Background(), articleURL)
	require.NoError(t, err)

	assert.Equal(t, 1, pages.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, DefaultPageTTL, cache.ttls["page:"+articleURL])
}

func TestService_Extract_FetchErrorIsFatal(t *testing.T) {
	fetchErr := &coreerrors.FetchError{URL: articleURL, StatusCode: 503}
	pages := &mockPageFetcher{err: fetchErr}
	svc := NewService(interfaces.Dependencies{Pages: pages}, DefaultSiteProfile(), 0)

	summary, err := svc.Extract(context.Background(), articleURL)

	assert.Nil(t, summary)
	assert.True(t, coreerrors.IsFetch(err))
}

func TestService_Extract_InvalidURL(t *testing.T) {
	svc := NewService(interfaces.Dependencies{Pages: &mockPageFetcher{}}, DefaultSiteProfile(), 0)

	for _, raw := range []string{"", "   ", "https://"} {
		_, err := svc.Extract(context.Background(), raw)
		assert.True(t, coreerrors.IsValidation(err), "input %q", raw)
	}
}

func TestService_Load_NoFetcher(t *testing.T) {
	svc := NewService(interfaces.Dependencies{}, DefaultSiteProfile(), 0)
	_, err := svc.Load(context.Background(), articleURL)
	assert.Error(t, err)
}

func TestSummarize_SentinelsNeverEmpty(t *testing.T) {
	doc := mustParse(t, `<html><body><p>short</p></body></html>`)

	summary := Summarize(doc, articleURL, DefaultSiteProfile())

	assert.Equal(t, domain.SentinelTitle, summary.Title)
	assert.Equal(t, domain.SentinelContent, summary.Content)
	assert.NotNil(t, summary.Images)
	assert.Empty(t, summary.Images)
	assert.Equal(t, domain.StrategyNone, summary.Strategy)
	assert.Equal(t, domain.SentinelNoImage, summary.Primary.Attribution)
}

func TestSummarize_Deterministic(t *testing.T) {
	page := `<body>
		<main><p>intro</p></main>
		<img src="https://example.com/a.jpg" alt="一張新聞照片的描述文字">
		<img src="https://storage.ctinews.com/compression/files/b.jpg" loading="lazy">
		<img src="https://example.com/c.webp" width="640" height="360">
	</body>`

	first := Summarize(mustParse(t, page), articleURL, DefaultSiteProfile())
	second := Summarize(mustParse(t, page), articleURL, DefaultSiteProfile())

	assert.Equal(t, first, second)
}

func TestNormalizeURL(t *testing.T) {
	got, err := NormalizeURL("http://example.com/a?b=1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a?b=1", got)

	got, err = NormalizeURL("example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)
}
