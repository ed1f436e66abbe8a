package site

import (
	"html/template"
	"time"

	"github.com/rabreu/mdsite/internal/config"
)

// Page is one listed article: what the index and the feed need to know.
type Page struct {
	Title       string
	Description string
	Href        string
	When        time.Time // Source file modification time
}

// pageData feeds the article and print templates.
type pageData struct {
	Content     template.HTML
	Title       string
	Description string
	Site        config.SiteConfig
	PrintHref   string
	FeedHref    string
}

// indexData feeds the index template.
type indexData struct {
	Site     config.SiteConfig
	Articles []Page
	FeedHref string
}

// Result summarizes a batch build.
type Result struct {
	Pages  int      // Article pages written
	Copied int      // Passthrough and static files copied
	Failed []string // Input paths that could not be processed
}
