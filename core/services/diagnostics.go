// ABOUTME: Diagnostics service reports how a page's HTML is structured around its images
// ABOUTME: Uses colly to visit the page and go-readability for a reader-mode comparison

package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly"

	coreerrors "newscard-api/core/errors"
	"newscard-api/core/extract"
	"newscard-api/core/interfaces"
)

const (
	diagnosticsMaxBody   = 10 * 1024 * 1024
	diagnosticsMaxImages = 10
	diagnosticsMaxURLs   = 5
	sampleSrcLimit       = 100
	sampleAltLimit       = 50
	noneMarker           = "(none)"
)

// DiagnosticsService inspects article pages for debugging extraction
type DiagnosticsService struct {
	deps      interfaces.Dependencies
	profile   extract.SiteProfile
	timeout   time.Duration
	transport http.RoundTripper
	trusted   []*regexp.Regexp
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(deps interfaces.Dependencies, profile extract.SiteProfile, timeout time.Duration) *DiagnosticsService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	trusted := make([]*regexp.Regexp, 0, len(profile.TrustedHosts))
	for _, host := range profile.TrustedHosts {
		if host == "" {
			continue
		}
		trusted = append(trusted, regexp.MustCompile(`https?://`+regexp.QuoteMeta(host)+`[^"\s]+\.jpg`))
	}

	return &DiagnosticsService{
		deps:    deps,
		profile: profile,
		timeout: timeout,
		transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- the target site serves a broken chain
		},
		trusted: trusted,
	}
}

// Diagnose visits the page and describes its image structure
func (s *DiagnosticsService) Diagnose(ctx context.Context, rawURL string) (*interfaces.DiagnosticsReport, error) {
	pageURL, err := extract.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &interfaces.DiagnosticsReport{
		URL:              pageURL,
		Images:           []interfaces.ImageSample{},
		TrustedImageURLs: []string{},
	}

	c := colly.NewCollector(
		colly.UserAgent(interfaces.BrowserUserAgent),
		colly.MaxBodySize(diagnosticsMaxBody),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.DetectCharset = true
	c.WithTransport(s.transport)
	c.SetRequestTimeout(s.timeout)

	var body []byte
	var status int
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", interfaces.BrowserAcceptLanguage)
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		s.sampleImages(e.DOM, report)
	})
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		s.deps.Log().Debug("Error visiting URL for diagnostics", map[string]interface{}{
			"url":    pageURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, &coreerrors.FetchError{URL: pageURL, StatusCode: status, Err: err}
	}

	report.TrustedImageURLs = s.trustedImageURLs(body)
	report.Reader = s.readerComparison(body, pageURL)

	s.deps.Log().Info("Page diagnosed", map[string]interface{}{
		"url":         pageURL,
		"totalImages": report.TotalImages,
		"hasArticle":  report.HasArticle,
	})
	return report, nil
}

func (s *DiagnosticsService) sampleImages(root *goquery.Selection, report *interfaces.DiagnosticsReport) {
	images := root.Find("img")
	report.TotalImages = images.Length()

	images.Slice(0, min(diagnosticsMaxImages, images.Length())).Each(func(_ int, img *goquery.Selection) {
		src := extract.ImageSource(img)
		if src == "" {
			src = noneMarker
		}
		alt, ok := img.Attr("alt")
		if !ok {
			alt = noneMarker
		}
		report.Images = append(report.Images, interfaces.ImageSample{
			Src: truncateRunes(src, sampleSrcLimit),
			Alt: truncateRunes(alt, sampleAltLimit),
		})
	})

	article := root.Find("article").First()
	if article.Length() > 0 {
		report.HasArticle = true
		report.ArticleImages = article.Find("img").Length()
		report.ArticleClass = article.AttrOr("class", "")
	}
}

func (s *DiagnosticsService) trustedImageURLs(body []byte) []string {
	urls := []string{}
	for _, re := range s.trusted {
		for _, m := range re.FindAll(body, -1) {
			if len(urls) == diagnosticsMaxURLs {
				return urls
			}
			urls = append(urls, string(m))
		}
	}
	return urls
}

func (s *DiagnosticsService) readerComparison(body []byte, pageURL string) interfaces.ReaderComparison {
	u, err := url.Parse(pageURL)
	if err != nil {
		return interfaces.ReaderComparison{Error: err.Error()}
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return interfaces.ReaderComparison{Error: err.Error()}
	}
	return interfaces.ReaderComparison{
		Title:   article.Title,
		Excerpt: article.Excerpt,
		Image:   article.Image,
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
