package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newscard-api/core/domain"
	"newscard-api/pkg/utils/parse"
)

var (
	cjkShortRun = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,4}`)
	cjkRun      = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,}`)

	characteristicPenaltyWords = []string{"logo", "icon", "avatar", "ad", "banner", "thumb"}
	improvedPenaltyWords       = []string{"logo", "icon", "avatar", "ad", "banner", "thumb", "small"}

	characteristicPositionBonus = []int{50, 30, 20, 10, 10, 10}
)

const improvedInitialBest = -999

// Selection is the outcome of primary image selection
type Selection struct {
	Candidate domain.ImageCandidate
	Strategy  domain.Strategy

	// Scored holds every candidate the winning strategy considered, with scores
	Scored []domain.ImageCandidate
}

// SelectPrimaryImage runs the three selection strategies in order and
// returns the first one that produces a candidate.
func SelectPrimaryImage(doc *Document, base *url.URL, profile SiteProfile) Selection {
	strategies := []domain.Strategy{
		domain.StrategyFirstInScope,
		domain.StrategyCharacteristic,
		domain.StrategyImproved,
	}
	for _, strategy := range strategies {
		if sel, ok := runStrategy(strategy, doc, base, profile); ok {
			return sel
		}
	}
	return Selection{Candidate: domain.NoImageCandidate(), Strategy: domain.StrategyNone}
}

func runStrategy(strategy domain.Strategy, doc *Document, base *url.URL, profile SiteProfile) (Selection, bool) {
	switch strategy {
	case domain.StrategyFirstInScope:
		return firstInScope(doc, base, profile)
	case domain.StrategyCharacteristic:
		return byCharacteristics(doc, base, profile)
	case domain.StrategyImproved:
		return byImprovedScore(doc, base, profile)
	default:
		return Selection{}, false
	}
}

func firstInScope(doc *Document, base *url.URL, profile SiteProfile) (Selection, bool) {
	var chosen *domain.ImageCandidate
	doc.contentScope(false).Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := ImageSource(img)
		if src == "" {
			return true
		}
		src = ResolveURL(base, src)
		alt := ResolveAltText(img, profile)
		if !IsContentImage(src, alt, profile) {
			return true
		}
		c := newCandidate(doc, img, src, alt, profile)
		chosen = &c
		return false
	})
	if chosen == nil {
		return Selection{}, false
	}
	return Selection{
		Candidate: *chosen,
		Strategy:  domain.StrategyFirstInScope,
		Scored:    []domain.ImageCandidate{*chosen},
	}, true
}

func byCharacteristics(doc *Document, base *url.URL, profile SiteProfile) (Selection, bool) {
	var scored []domain.ImageCandidate
	best := -1
	doc.Images().Each(func(_ int, img *goquery.Selection) {
		src := ImageSource(img)
		alt := ResolveAltText(img, profile)
		// classified on the URL as authored, before resolution
		if src == "" || !IsContentImage(src, alt, profile) {
			return
		}
		src = ResolveURL(base, src)
		c := newCandidate(doc, img, src, alt, profile)
		c.Score = float64(characteristicScore(img, c.Position, src, alt, profile))
		scored = append(scored, c)
		if best < 0 || c.Score > scored[best].Score {
			best = len(scored) - 1
		}
	})
	if best < 0 {
		return Selection{}, false
	}
	return Selection{Candidate: scored[best], Strategy: domain.StrategyCharacteristic, Scored: scored}, true
}

func byImprovedScore(doc *Document, base *url.URL, profile SiteProfile) (Selection, bool) {
	var scored []domain.ImageCandidate
	best, bestScore := -1, float64(improvedInitialBest)
	doc.Images().Each(func(_ int, img *goquery.Selection) {
		src := ImageSource(img)
		if src == "" {
			return
		}
		src = ResolveURL(base, src)
		alt := ResolveAltText(img, profile)
		c := newCandidate(doc, img, src, alt, profile)
		c.Score = float64(improvedScore(img, c.Position, src, alt, profile))
		scored = append(scored, c)
		if c.Score > bestScore {
			best, bestScore = len(scored)-1, c.Score
		}
	})
	if best < 0 {
		return Selection{}, false
	}
	return Selection{Candidate: scored[best], Strategy: domain.StrategyImproved, Scored: scored}, true
}

func newCandidate(doc *Document, img *goquery.Selection, src, alt string, profile SiteProfile) domain.ImageCandidate {
	return domain.ImageCandidate{
		URL:         src,
		AltText:     alt,
		Attribution: CleanAltText(alt, profile),
		Position:    doc.Position(img),
	}
}

func characteristicScore(img *goquery.Selection, position int, src, alt string, profile SiteProfile) int {
	score := 0
	if position >= 0 {
		if position < len(characteristicPositionBonus) {
			score += characteristicPositionBonus[position]
		} else {
			score -= 2 * position
		}
	}

	if alt != "" {
		n := utf8.RuneCountInString(alt)
		if containsAny(alt, profile.CreditKeywords) {
			score += 40
		}
		if cjkShortRun.MatchString(alt) {
			score += 20
		}
		if n >= 15 && n <= 100 {
			score += 15
		} else if n > 100 {
			score += 5
		}
		if n > 50 && containsAny(alt, profile.AttributionKeywords) {
			score += 25
		}
	}

	if profile.IsTrustedHost(src) {
		score += 30
		if markerIn(src, profile.CompressionMarker) {
			score += 20
		}
		if markerIn(src, profile.CutMarker) {
			score += 15
		}
	}

	score += loadingBonus(img, 25, 10)

	if w, ok := parse.Int(img.AttrOr("width", "")); ok {
		if h, ok := parse.Int(img.AttrOr("height", "")); ok {
			if w > h && w >= 300 {
				score += 25
			} else if w >= 200 && h >= 200 {
				score += 15
			}
		}
	}

	if mentionsAny(src, alt, characteristicPenaltyWords) {
		score -= 30
	}
	return score
}

func improvedScore(img *goquery.Selection, position int, src, alt string, profile SiteProfile) int {
	score := 10
	if position >= 0 {
		score += max(0, 40-5*position)
	}

	if alt != "" {
		for _, tier := range profile.CreditTiers {
			if tier.Text != "" && strings.Contains(alt, tier.Text) {
				score += tier.Bonus
				break
			}
		}
		if containsAny(alt, profile.SourceKeywords) {
			score += 20
		}
		if cjkRun.MatchString(alt) {
			score += 15
		}
		if utf8.RuneCountInString(alt) > 50 {
			score += 10
		}
	}

	if profile.IsTrustedHost(src) {
		score += 35
		if markerIn(src, profile.CompressionMarker) {
			score += 15
		}
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"), strings.HasSuffix(lower, ".png"):
		score += 10
	case strings.HasSuffix(lower, ".webp"):
		score += 5
	}

	score += loadingBonus(img, 20, 10)

	if mentionsAny(src, alt, improvedPenaltyWords) {
		score -= 40
	}
	return score
}

func loadingBonus(img *goquery.Selection, eager, lazy int) int {
	switch img.AttrOr("loading", "") {
	case "eager":
		return eager
	case "lazy":
		return lazy
	}
	return 0
}

func markerIn(src, marker string) bool {
	return marker != "" && strings.Contains(src, marker)
}

func mentionsAny(src, alt string, words []string) bool {
	src, alt = strings.ToLower(src), strings.ToLower(alt)
	for _, w := range words {
		if strings.Contains(src, w) || strings.Contains(alt, w) {
			return true
		}
	}
	return false
}
