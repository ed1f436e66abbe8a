// Package config loads and validates site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rabreu/mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidTimeout = errors.New("invalid fetch timeout")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // Site title
	MaxDescriptionLength = 500  // Site description
	MaxURLLength         = 2048 // Browser limit
)

// Config holds all configuration for site generation.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Static    StaticConfig    `yaml:"static"`
	Templates TemplatesConfig `yaml:"templates"`
	Feed      FeedConfig      `yaml:"feed"`
	Images    ImagesConfig    `yaml:"images"`
	PDF       PDFConfig       `yaml:"pdf"`
}

// SiteConfig identifies the site in page titles and the feed channel.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"baseURL"` // Absolute prefix for feed links
}

// StaticConfig locates the static assets directory copied into the output.
type StaticConfig struct {
	Dir string `yaml:"dir"` // Empty = no static directory
}

// TemplatesConfig locates page template overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir"` // Empty = embedded templates
}

// FeedConfig defines feed output options.
type FeedConfig struct {
	Filename string `yaml:"filename"` // Default "rss.xml"
}

// ImagesConfig defines image inlining options.
type ImagesConfig struct {
	FetchTimeout string `yaml:"fetchTimeout"` // Go duration, default "10s"
}

// Timeout parses the configured fetch timeout.
func (c ImagesConfig) Timeout() (time.Duration, error) {
	if c.FetchTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, c.FetchTimeout)
	}
	return d, nil
}

// PDFConfig defines the optional PDF export of print variants.
type PDFConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title: "Articles",
		},
		Feed: FeedConfig{
			Filename: "rss.xml",
		},
		Images: ImagesConfig{
			FetchTimeout: "10s",
		},
	}
}

// LoadConfig reads and validates a YAML config file. Values missing from
// the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field lengths and option formats.
func (c *Config) Validate() error {
	if len(c.Site.Title) > MaxTitleLength {
		return fmt.Errorf("%w: site.title (%d > %d)", ErrFieldTooLong, len(c.Site.Title), MaxTitleLength)
	}
	if len(c.Site.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: site.description (%d > %d)", ErrFieldTooLong, len(c.Site.Description), MaxDescriptionLength)
	}
	if len(c.Site.BaseURL) > MaxURLLength {
		return fmt.Errorf("%w: site.baseURL (%d > %d)", ErrFieldTooLong, len(c.Site.BaseURL), MaxURLLength)
	}
	if _, err := c.Images.Timeout(); err != nil {
		return err
	}
	return nil
}
