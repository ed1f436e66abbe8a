package site

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"

	"github.com/rabreu/mdsite/internal/config"
)

// BuildFeed assembles the RSS 2.0 document for the listed articles. Item
// links are absolute, joined from the site base URL and the page href.
func BuildFeed(site config.SiteConfig, listed []Page, now time.Time) (string, error) {
	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.BaseURL},
		Description: site.Description,
		Created:     now,
	}

	for _, page := range listed {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       page.Title,
			Link:        &feeds.Link{Href: absoluteHref(site.BaseURL, page.Href)},
			Description: page.Description,
			Created:     page.When,
		})
	}

	return feed.ToRss()
}

// writeFeed renders the feed into the output directory.
func (b *Builder) writeFeed(outDir string, listed []Page) error {
	rss, err := BuildFeed(b.cfg.Site, listed, time.Now())
	if err != nil {
		return fmt.Errorf("building feed: %w", err)
	}
	outPath := filepath.Join(outDir, b.cfg.Feed.Filename)
	if err := os.WriteFile(outPath, []byte(rss), filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}
	return nil
}

// absoluteHref joins the base URL and a page href. With no base URL the
// href stays relative, which feed readers resolve against the feed itself.
func absoluteHref(baseURL, href string) string {
	if baseURL == "" {
		return href
	}
	joined, err := url.JoinPath(baseURL, href)
	if err != nil {
		return href
	}
	return joined
}
