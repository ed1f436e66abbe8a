// Package site assembles a directory of Markdown articles into a static
// website: per-article pages with print variants, an index, an RSS feed,
// passthrough files, and optional PDF exports.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	mdsite "github.com/rabreu/mdsite"
	"github.com/rabreu/mdsite/internal/assets"
	"github.com/rabreu/mdsite/internal/config"
	"github.com/rabreu/mdsite/internal/fileutil"
)

// Sentinel errors for site assembly.
var (
	ErrTemplateParse = errors.New("failed to parse page template")
	ErrReadArticle   = errors.New("failed to read article")
	ErrWriteOutput   = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o755 // rwxr-xr-x: generated site is world-readable
	filePermissions = 0o644 // rw-r--r--
)

// staticAllowedExts limits what the static directory copy picks up.
var staticAllowedExts = map[string]bool{
	".css": true, ".js": true, ".txt": true, ".svg": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".ico": true, ".woff": true, ".woff2": true,
}

// Builder runs batch site generation. One document is fully processed
// before the next; per-document failures are isolated and reported, never
// fatal for the batch.
type Builder struct {
	svc      *mdsite.Service
	cfg      *config.Config
	logger   *log.Logger
	renderer PrintRenderer

	articleTmpl *template.Template
	printTmpl   *template.Template
	indexTmpl   *template.Template
	stylesheet  string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRenderer injects the PDF renderer (tests use a fake; production uses
// headless Chrome when pdf.enabled is set).
func WithRenderer(r PrintRenderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// New creates a Builder, loading and parsing all page templates up front.
// Template problems are fatal for the whole batch, so they surface here.
func New(svc *mdsite.Service, cfg *config.Config, loader assets.Loader, logger *log.Logger, opts ...Option) (*Builder, error) {
	b := &Builder{svc: svc, cfg: cfg, logger: logger}

	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil && cfg.PDF.Enabled {
		b.renderer = NewRodRenderer(defaultRenderTimeout)
	}

	var err error
	if b.articleTmpl, err = loadTemplate(loader, "article"); err != nil {
		return nil, err
	}
	if b.printTmpl, err = loadTemplate(loader, "print"); err != nil {
		return nil, err
	}
	if b.indexTmpl, err = loadTemplate(loader, "index"); err != nil {
		return nil, err
	}
	if b.stylesheet, err = loader.Style("site"); err != nil {
		return nil, err
	}

	return b, nil
}

// Close releases the PDF renderer's browser, if one was started.
func (b *Builder) Close() error {
	if b.renderer != nil {
		return b.renderer.Close()
	}
	return nil
}

// Build generates the site from inDir into outDir. Reverse-sorted directory
// order puts date-prefixed filenames newest first on the index and in the
// feed. The returned Result lists per-document failures; the error covers
// batch-fatal conditions only (unreadable input dir, uncreatable output).
func (b *Builder) Build(ctx context.Context, inDir, outDir string) (*Result, error) {
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || fileutil.IsSkippable(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	result := &Result{}
	var listed []Page

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		inPath := filepath.Join(inDir, name)

		if !fileutil.IsMarkdownPath(name) {
			if err := copyFile(inPath, filepath.Join(outDir, name)); err != nil {
				b.logger.Warn("skipping file", "path", inPath, "err", err)
				result.Failed = append(result.Failed, inPath)
				continue
			}
			result.Copied++
			continue
		}

		page, err := b.buildArticle(ctx, inPath, inDir, outDir, name)
		if err != nil {
			b.logger.Error("article failed", "path", inPath, "err", err)
			result.Failed = append(result.Failed, inPath)
			continue
		}
		result.Pages++
		if page != nil {
			listed = append(listed, *page)
		}
	}

	if err := b.writeIndex(outDir, listed); err != nil {
		return nil, err
	}
	if err := b.writeFeed(outDir, listed); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "site.css"), []byte(b.stylesheet), filePermissions); err != nil {
		return nil, fmt.Errorf("%w: site.css: %v", ErrWriteOutput, err)
	}

	if b.cfg.Static.Dir != "" {
		copied, err := copyStaticDir(b.cfg.Static.Dir, outDir)
		if err != nil {
			return nil, fmt.Errorf("copying static assets: %w", err)
		}
		result.Copied += copied
	}

	return result, nil
}

// buildArticle converts one Markdown file and writes its page, print
// variant, and optional PDF. Returns the Page for the index and feed, or
// nil when the article's metadata keeps it unlisted.
func (b *Builder) buildArticle(ctx context.Context, inPath, inDir, outDir, name string) (*Page, error) {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArticle, err)
	}

	article, err := b.svc.Convert(ctx, mdsite.Input{Markdown: string(raw), BaseDir: inDir})
	if err != nil {
		return nil, err
	}

	stem := fileutil.Stem(name)
	href := stem + ".html"
	printHref := stem + "_print.html"

	data := pageData{
		Content:     template.HTML(article.HTML),
		Title:       article.Title,
		Description: article.Description,
		Site:        b.cfg.Site,
		PrintHref:   printHref,
		FeedHref:    b.cfg.Feed.Filename,
	}

	if err := b.renderPage(b.articleTmpl, filepath.Join(outDir, href), data); err != nil {
		return nil, err
	}
	printPath := filepath.Join(outDir, printHref)
	if err := b.renderPage(b.printTmpl, printPath, data); err != nil {
		return nil, err
	}

	if b.renderer != nil {
		pdf, err := b.renderer.RenderFile(ctx, printPath)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(outDir, stem+".pdf"), pdf, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %s.pdf: %v", ErrWriteOutput, stem, err)
		}
	}

	if !article.Metadata.Listed() {
		return nil, nil
	}

	page := Page{Title: article.Title, Description: article.Description, Href: href}
	if info, err := os.Stat(inPath); err == nil {
		page.When = info.ModTime()
	}
	return &page, nil
}

// writeIndex renders the article listing.
func (b *Builder) writeIndex(outDir string, listed []Page) error {
	data := indexData{
		Site:     b.cfg.Site,
		Articles: listed,
		FeedHref: b.cfg.Feed.Filename,
	}
	return b.renderPage(b.indexTmpl, filepath.Join(outDir, "index.html"), data)
}

// renderPage executes a template into an output file.
func (b *Builder) renderPage(tmpl *template.Template, outPath string, data any) error {
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("rendering %s: %w", outPath, err)
	}
	return nil
}

// loadTemplate parses one named page template from the loader.
func loadTemplate(loader assets.Loader, name string) (*template.Template, error) {
	content, err := loader.Template(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return tmpl, nil
}

// copyFile copies one regular file.
func copyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// copyStaticDir copies allowlisted files from the static directory into the
// output, preserving relative paths.
func copyStaticDir(staticDir, outDir string) (int, error) {
	copied := 0
	err := filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !staticAllowedExts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), dirPermissions); err != nil {
			return err
		}
		if err := copyFile(path, dest); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}
