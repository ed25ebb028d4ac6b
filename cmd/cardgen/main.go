// ABOUTME: Command-line card generator
// ABOUTME: Renders one article URL, or every link of an RSS/Atom feed, to PNG files

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"newscard-api/cardkit"
	"newscard-api/infrastructure/logger/structured"
	"newscard-api/pkg/utils/parse"
)

type options struct {
	url        string
	feed       string
	limit      int
	outDir     string
	showSource bool
	dual       string
	title      string
	content    string
	configPath string
	assetsDir  string
	cachePath  string
	workers    int
	timeout    time.Duration
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.url, "url", "", "article URL to render")
	flag.StringVar(&opts.feed, "feed", "", "RSS/Atom feed whose item links are rendered")
	flag.IntVar(&opts.limit, "limit", 10, "maximum number of feed items to render")
	flag.StringVar(&opts.outDir, "out", ".", "directory PNG files are written to")
	flag.BoolVar(&opts.showSource, "source", false, "draw the image attribution")
	flag.StringVar(&opts.dual, "dual", "", "render two images, e.g. 1,2")
	flag.StringVar(&opts.title, "title", "", "replace the extracted title")
	flag.StringVar(&opts.content, "content", "", "replace the extracted lead paragraph")
	flag.StringVar(&opts.configPath, "config", "", "YAML card configuration")
	flag.StringVar(&opts.assetsDir, "assets", "assets", "directory holding fonts and the background")
	flag.StringVar(&opts.cachePath, "cache", "", "SQLite file for the page cache (memory when empty)")
	flag.IntVar(&opts.workers, "workers", 4, "concurrent renders for feeds")
	flag.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "cardgen:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if (opts.url == "") == (opts.feed == "") {
		return errors.New("exactly one of -url or -feed is required")
	}

	renderOpts, err := buildRenderOptions(opts)
	if err != nil {
		return err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := structured.New(structured.Options{Level: level, Format: "text", Output: os.Stderr})
	defer logger.Close()

	clientOpts := []cardkit.Option{
		cardkit.WithLogger(logger),
		cardkit.WithAssetsDir(opts.assetsDir),
		cardkit.WithWorkers(max(opts.workers, 1)),
	}
	if opts.configPath != "" {
		clientOpts = append(clientOpts, cardkit.WithCardConfigFile(opts.configPath))
	}
	if opts.cachePath != "" {
		clientOpts = append(clientOpts, cardkit.WithCacheOption(cardkit.CacheOption{
			Type:     cardkit.CacheTypeSQLite,
			FilePath: opts.cachePath,
		}))
	}

	client, err := cardkit.NewClient(clientOpts...)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, opts.timeout)
	defer cancelTimeout()

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if opts.url != "" {
		card, err := client.Render(ctx, opts.url, renderOpts...)
		if err != nil {
			return err
		}
		return writeCard(opts.outDir, outputName(opts.url, 0), card)
	}

	links, err := feedLinks(ctx, opts.feed, opts.limit)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return fmt.Errorf("feed %s has no item links", opts.feed)
	}

	failed := 0
	for i, r := range client.RenderBatch(ctx, links, renderOpts...) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.URL, r.Err)
			continue
		}
		if err := writeCard(opts.outDir, outputName(r.URL, i+1), r.Card); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cards failed", failed, len(links))
	}
	return nil
}

func buildRenderOptions(opts options) ([]cardkit.RenderOption, error) {
	var out []cardkit.RenderOption
	if opts.showSource {
		out = append(out, cardkit.WithSource())
	}
	if opts.dual != "" {
		first, second, err := parseDual(opts.dual)
		if err != nil {
			return nil, err
		}
		out = append(out, cardkit.WithDualImages(first, second))
	}
	if opts.title != "" {
		out = append(out, cardkit.WithTitle(opts.title))
	}
	if opts.content != "" {
		out = append(out, cardkit.WithContent(opts.content))
	}
	return out, nil
}

// parseDual reads "i,j" into two 1-based image indices
func parseDual(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("-dual wants two indices like 1,2, got %q", s)
	}
	first, ok1 := parse.Int(parts[0])
	second, ok2 := parse.Int(parts[1])
	if !ok1 || !ok2 || first < 1 || second < 1 {
		return 0, 0, fmt.Errorf("-dual indices must be positive integers, got %q", s)
	}
	return first, second, nil
}

func writeCard(dir, name string, card *cardkit.Card) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, card.PNG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Println(path)
	return nil
}
