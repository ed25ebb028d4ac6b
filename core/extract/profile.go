// ABOUTME: Site profile describing the source site's image host and editorial vocabulary
// ABOUTME: Keyword lists and host markers feed classification, scoring and alt-text cleanup

package extract

import "strings"

// CreditTier is an exclusive alt-text bonus used by the improved scorer.
// Only the first matching tier counts.
type CreditTier struct {
	Text  string `yaml:"text"`
	Bonus int    `yaml:"bonus"`
}

// SiteProfile holds everything site-specific about extraction
type SiteProfile struct {
	// TrustedHosts are the canonical image hosts of the source site
	TrustedHosts []string `yaml:"trustedHosts"`

	// SiteDomain is accepted by the unclassified fallback of the collector
	SiteDomain string `yaml:"siteDomain"`

	// CompressionMarker appears in the path of processed editorial images
	CompressionMarker string `yaml:"compressionMarker"`

	// CutMarker appears in the file name of cropped editorial images
	CutMarker string `yaml:"cutMarker"`

	// CreditKeywords mark a photo credit in alt text
	CreditKeywords []string `yaml:"creditKeywords"`

	// CaptionKeywords identify a caption paragraph following a figure
	CaptionKeywords []string `yaml:"captionKeywords"`

	// AttributionKeywords reward long alt texts that carry an attribution
	AttributionKeywords []string `yaml:"attributionKeywords"`

	// ContentIndicators mark an image as editorial when found in alt text or URL
	ContentIndicators []string `yaml:"contentIndicators"`

	// SourceKeywords reward alt texts naming a source, used by the improved scorer
	SourceKeywords []string `yaml:"sourceKeywords"`

	// CreditTiers are the exclusive credit bonuses of the improved scorer, best first
	CreditTiers []CreditTier `yaml:"creditTiers"`

	// ScreenCaptureMarker in alt text replaces the attribution with ScreenCaptureAttribution
	ScreenCaptureMarker      string `yaml:"screenCaptureMarker"`
	ScreenCaptureAttribution string `yaml:"screenCaptureAttribution"`
}

// DefaultSiteProfile returns the profile of the CTi News site
func DefaultSiteProfile() SiteProfile {
	return SiteProfile{
		TrustedHosts:        []string{"storage.ctinews.com"},
		SiteDomain:          "ctinews.com",
		CompressionMarker:   "/compression/files/",
		CutMarker:           "cut-",
		CreditKeywords:      []string{"資料照", "中天新聞"},
		CaptionKeywords:     []string{"圖", "攝", "取自", "翻攝", "資料照"},
		AttributionKeywords: []string{"圖", "攝", "翻攝", "資料照"},
		ContentIndicators: []string{
			"資料照", "圖片來源", "截自", "翻攝", "中天新聞", "記者", "攝影",
			".jpg", ".png", ".jpeg", ".webp",
		},
		SourceKeywords: []string{"圖片來源", "截自", "翻攝", "記者", "圖／"},
		CreditTiers: []CreditTier{
			{Text: "資料照／中天新聞", Bonus: 60},
			{Text: "資料照", Bonus: 40},
			{Text: "中天新聞", Bonus: 30},
		},
		ScreenCaptureMarker:      "翻攝畫面",
		ScreenCaptureAttribution: "資料來源:中天新聞網",
	}
}

// IsTrustedHost reports whether the URL is served from a trusted image host
func (p SiteProfile) IsTrustedHost(src string) bool {
	for _, host := range p.TrustedHosts {
		if host != "" && strings.Contains(src, host) {
			return true
		}
	}
	return false
}

// IsSiteImage reports whether the URL belongs to the source site at all
func (p SiteProfile) IsSiteImage(src string) bool {
	if p.IsTrustedHost(src) {
		return true
	}
	return p.SiteDomain != "" && strings.Contains(src, p.SiteDomain)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
