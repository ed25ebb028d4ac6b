// ABOUTME: YAML card configuration covering canvas geometry, fonts, colors and the site profile
// ABOUTME: Values in the file are merged over the built-in defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"newscard-api/core/extract"
	"newscard-api/core/layout"
)

// CardConfig is the on-disk card configuration
type CardConfig struct {
	layout.Config `yaml:",inline"`

	// Site holds the per-site extraction vocabulary
	Site extract.SiteProfile `yaml:"site"`
}

// DefaultCardConfig returns the built-in card configuration
func DefaultCardConfig() *CardConfig {
	return &CardConfig{
		Config: layout.DefaultConfig(),
		Site:   extract.DefaultSiteProfile(),
	}
}

// LoadCardConfig reads path and merges it over the defaults. An empty path
// returns the defaults.
func LoadCardConfig(path string) (*CardConfig, error) {
	cfg := DefaultCardConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse card config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the layout and that the site profile can classify images
func (c *CardConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if len(c.Site.TrustedHosts) == 0 {
		return fmt.Errorf("card config: site.trustedHosts must not be empty")
	}
	return nil
}

// ResolveAssets rewrites relative font and background paths against dir
func (c *CardConfig) ResolveAssets(dir string) {
	if dir == "" {
		return
	}
	for _, p := range []*string{
		&c.Canvas.BackgroundPath,
		&c.Title.FontRegular,
		&c.Title.FontBold,
		&c.Image.SourceFontPath,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
