package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = &url.URL{Scheme: "https", Host: "www.ctinews.com", Path: "/"}

func TestCollectContentImages(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<header><img src="/static/logo.png" alt="site"></header>
		<article>
			<img src="https://storage.ctinews.com/compression/files/a.jpg" alt="市長出席記者會（資料照／中天新聞）">
			<figure><img data-src="/img/b.jpg"><figcaption>圖／記者王小明攝</figcaption></figure>
			<img src="https://storage.ctinews.com/compression/files/a.jpg" alt="duplicate">
			<img src="/icons/share.png" alt="share">
		</article>
	</body></html>`)

	images := CollectContentImages(doc, testBase, DefaultSiteProfile())

	require.Len(t, images, 2)
	assert.Equal(t, "https://storage.ctinews.com/compression/files/a.jpg", images[0].URL)
	assert.Equal(t, "市長出席記者會（資料照／中天新聞）", images[0].AltText)
	assert.Equal(t, "資料照／中天新聞", images[0].Attribution)
	assert.Equal(t, 1, images[0].Position)

	assert.Equal(t, "https://www.ctinews.com/img/b.jpg", images[1].URL)
	assert.Equal(t, "圖／記者王小明攝", images[1].AltText)
	assert.Equal(t, 2, images[1].Position)
}

func TestCollectContentImages_UniqueURLs(t *testing.T) {
	doc := mustParse(t, `<article>
		<img src="/p/1.jpg"><img src="/p/1.jpg"><img src="/p/2.jpg"><img data-src="/p/2.jpg">
	</article>`)

	images := CollectContentImages(doc, testBase, DefaultSiteProfile())

	seen := map[string]bool{}
	for _, img := range images {
		assert.False(t, seen[img.URL], "duplicate url %s", img.URL)
		seen[img.URL] = true
	}
	assert.Len(t, images, 2)
}

func TestCollectContentImages_SiteFallback(t *testing.T) {
	doc := mustParse(t, `<div class="content">
		<img src="https://www.ctinews.com/media/photo">
		<img src="https://other.example.com/media/photo">
	</div>`)

	images := CollectContentImages(doc, testBase, DefaultSiteProfile())

	require.Len(t, images, 1)
	assert.Equal(t, "https://www.ctinews.com/media/photo", images[0].URL)
	assert.Equal(t, "no alt text", images[0].Attribution)
}

func TestCollectContentImages_NoImages(t *testing.T) {
	doc := mustParse(t, `<article><p>text only</p></article>`)
	assert.Empty(t, CollectContentImages(doc, testBase, DefaultSiteProfile()))
}

func TestImageSource(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"src first", `<img src="a.jpg" data-src="b.jpg">`, "a.jpg"},
		{"data-src", `<img data-src="b.jpg">`, "b.jpg"},
		{"data-lazy", `<img data-lazy="c.jpg">`, "c.jpg"},
		{"data-original", `<img data-original="d.jpg">`, "d.jpg"},
		{"data-srcset", `<img data-srcset="e-800.jpg 800w, e-400.jpg 400w" srcset="f.jpg 1x">`, "e-800.jpg"},
		{"srcset", `<img srcset="  f.jpg 1x, g.jpg 2x">`, "f.jpg"},
		{"none", `<img alt="x">`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			assert.Equal(t, tt.want, ImageSource(doc.Find("img").First()))
		})
	}
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://www.ctinews.com/img/c.jpg", ResolveURL(testBase, "img/c.jpg"))
	assert.Equal(t, "https://www.ctinews.com/img/c.jpg", ResolveURL(testBase, "/img/c.jpg"))
	assert.Equal(t, "https://cdn.example.com/x.jpg", ResolveURL(testBase, "//cdn.example.com/x.jpg"))
	assert.Equal(t, "http://a.example.com/x.jpg", ResolveURL(testBase, "http://a.example.com/x.jpg"))
	assert.Equal(t, "img/c.jpg", ResolveURL(nil, "img/c.jpg"))
}

func TestResolveAltText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "own alt",
			html: `<figure><img id="t" alt=" own "><figcaption>caption</figcaption></figure>`,
			want: "own",
		},
		{
			name: "figure caption",
			html: `<figure><img id="t"><figcaption> caption </figcaption></figure>`,
			want: "caption",
		},
		{
			name: "centered paragraph after figure",
			html: `<div><figure><img id="t"></figure><p style="text-align: center">Rescue teams at work</p></div>`,
			want: "Rescue teams at work",
		},
		{
			name: "credit paragraph after figure",
			html: `<div><figure><img id="t"></figure><p>圖／中天新聞</p></div>`,
			want: "圖／中天新聞",
		},
		{
			name: "ordinary paragraph after figure is ignored",
			html: `<div><figure><img id="t"></figure><p>Body text continues here</p></div>`,
			want: "",
		},
		{
			name: "following figcaption sibling",
			html: `<div><img id="t"><span>x</span><figcaption>after</figcaption></div>`,
			want: "after",
		},
		{
			name: "preceding figcaption sibling",
			html: `<div><figcaption>before</figcaption><img id="t"></div>`,
			want: "before",
		},
		{
			name: "figcaption after parent",
			html: `<div><span><img id="t"></span><figcaption>parent next</figcaption></div>`,
			want: "parent next",
		},
		{
			name: "nothing",
			html: `<div><img id="t"></div>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			assert.Equal(t, tt.want, ResolveAltText(doc.Find("#t"), DefaultSiteProfile()))
		})
	}
}

func TestIsContentImage(t *testing.T) {
	profile := DefaultSiteProfile()
	tests := []struct {
		name string
		src  string
		alt  string
		want bool
	}{
		{"deny logo in url", "https://storage.ctinews.com/logo.jpg", "資料照", false},
		{"deny alt", "https://example.com/p.jpg", "Share on Facebook", false},
		{"deny ad with separator", "https://example.com/ad/p.jpg", "", false},
		{"ad inside word is fine", "https://example.com/header/p.jpg", "", true},
		{"credit keyword in alt", "https://example.com/p", "資料照", true},
		{"extension in url", "https://example.com/P.JPG", "", true},
		{"descriptive alt", "https://example.com/p", "ten chars!", true},
		{"alt too long", "https://example.com/p", strings.Repeat("x", 201), false},
		{"trusted host", "https://storage.ctinews.com/p", "", true},
		{"unknown", "https://example.com/p", "short", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsContentImage(tt.src, tt.alt, profile))
		})
	}
}
