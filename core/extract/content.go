package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newscard-api/core/domain"
)

const (
	minTitleRunes     = 5
	minParagraphRunes = 50
)

// ExtractTitle returns the first <h1> longer than five characters, then the
// <title> text up to the first '|', then the title sentinel.
func ExtractTitle(doc *Document) string {
	title := ""
	doc.Find("h1").EachWithBreak(func(_ int, h1 *goquery.Selection) bool {
		t := text(h1)
		if utf8.RuneCountInString(t) > minTitleRunes {
			title = t
			return false
		}
		return true
	})
	if title != "" {
		return title
	}

	titleTag := doc.Find("title").First()
	if titleTag.Length() > 0 {
		t := text(titleTag)
		if i := strings.Index(t, "|"); i >= 0 {
			t = t[:i]
		}
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return domain.SentinelTitle
}

// ExtractLeadParagraph returns the first <p> longer than fifty characters
func ExtractLeadParagraph(doc *Document) string {
	lead := ""
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := text(p)
		if utf8.RuneCountInString(t) > minParagraphRunes {
			lead = t
			return false
		}
		return true
	})
	if lead == "" {
		return domain.SentinelContent
	}
	return lead
}
