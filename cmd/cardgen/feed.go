package main

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"newscard-api/core/interfaces"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// feedLinks returns the distinct item links of a feed, newest first as the
// feed lists them, capped at limit when limit > 0
func feedLinks(ctx context.Context, feedURL string, limit int) ([]string, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = interfaces.BrowserUserAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	seen := make(map[string]bool, len(feed.Items))
	var links []string
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
		if limit > 0 && len(links) == limit {
			break
		}
	}
	return links, nil
}

// outputName derives a file name from the article path. n > 0 prefixes a
// sequence number so feed items keep their order on disk.
func outputName(articleURL string, n int) string {
	base := "card"
	if u, err := url.Parse(articleURL); err == nil {
		if seg := path.Base(strings.TrimSuffix(u.Path, "/")); seg != "." && seg != "/" && seg != "" {
			base = seg
		}
	}
	base = strings.Trim(unsafeName.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "card"
	}
	base = strings.TrimSuffix(base, path.Ext(base))

	if n > 0 {
		return fmt.Sprintf("%03d-%s.png", n, base)
	}
	return base + ".png"
}
