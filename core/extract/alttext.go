package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"newscard-api/core/domain"
)

const maxAltRunes = 100

// bracketPatterns are tried in order; the first style with any match wins
var bracketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`（([^）]+)）`),
	regexp.MustCompile(`\(([^)]+)\)`),
	regexp.MustCompile(`【([^】]+)】`),
	regexp.MustCompile(`\[([^\]]+)\]`),
}

// CleanAltText turns raw alt text into a short attribution string
func CleanAltText(raw string, profile SiteProfile) string {
	if strings.TrimSpace(raw) == "" {
		return domain.SentinelNoAltText
	}

	result := bracketed(raw)
	if marker := profile.ScreenCaptureMarker; marker != "" &&
		(strings.Contains(raw, marker) || strings.Contains(result, marker)) {
		return profile.ScreenCaptureAttribution
	}
	return result
}

// bracketed returns the longest bracketed span of the first matching style,
// or the text itself truncated to maxAltRunes.
func bracketed(s string) string {
	for _, re := range bracketPatterns {
		matches := re.FindAllStringSubmatch(s, -1)
		if len(matches) == 0 {
			continue
		}
		best := matches[0][1]
		for _, m := range matches[1:] {
			if utf8.RuneCountInString(m[1]) > utf8.RuneCountInString(best) {
				best = m[1]
			}
		}
		return best
	}

	if utf8.RuneCountInString(s) > maxAltRunes {
		return string([]rune(s)[:maxAltRunes]) + "..."
	}
	return s
}
