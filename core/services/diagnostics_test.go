package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "newscard-api/core/errors"
	"newscard-api/core/extract"
	"newscard-api/core/interfaces"
)

const diagnosticsPage = `<html><head><title>Typhoon update | CTi</title></head><body>
<img src="/static/logo.png" alt="logo">
<article class="article-body">
	<h1>Typhoon makes landfall in the east</h1>
	<p>Heavy rain is expected across the island tonight as the storm moves north along the coast.</p>
	<img data-src="https://storage.ctinews.com/compression/files/default/cut-1.jpg" alt="資料照／中天新聞">
	<img src="https://storage.ctinews.com/compression/files/default/cut-2.jpg">
</article>
</body></html>`

func TestDiagnose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(diagnosticsPage))
	}))
	defer server.Close()

	svc := NewDiagnosticsService(interfaces.Dependencies{Logger: &mockLogger{}}, extract.DefaultSiteProfile(), 0)

	report, err := svc.Diagnose(context.Background(), server.URL+"/news/1")
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalImages)
	require.Len(t, report.Images, 3)
	assert.Equal(t, "/static/logo.png", report.Images[0].Src)
	assert.Equal(t, "https://storage.ctinews.com/compression/files/default/cut-1.jpg", report.Images[1].Src)
	assert.Equal(t, "(none)", report.Images[2].Alt)

	assert.True(t, report.HasArticle)
	assert.Equal(t, 2, report.ArticleImages)
	assert.Equal(t, "article-body", report.ArticleClass)

	assert.Equal(t, []string{
		"https://storage.ctinews.com/compression/files/default/cut-1.jpg",
		"https://storage.ctinews.com/compression/files/default/cut-2.jpg",
	}, report.TrustedImageURLs)
}

func TestDiagnose_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewDiagnosticsService(interfaces.Dependencies{}, extract.DefaultSiteProfile(), 0)

	report, err := svc.Diagnose(context.Background(), server.URL)

	assert.Nil(t, report)
	assert.True(t, coreerrors.IsFetch(err))
}

func TestDiagnose_InvalidURL(t *testing.T) {
	svc := NewDiagnosticsService(interfaces.Dependencies{}, extract.DefaultSiteProfile(), 0)

	_, err := svc.Diagnose(context.Background(), "")

	assert.True(t, coreerrors.IsValidation(err))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "中天", truncateRunes("中天新聞", 2))
	assert.Equal(t, "abc", truncateRunes("abc", 5))
}
