package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	mdsite "github.com/rabreu/mdsite"
	"github.com/rabreu/mdsite/internal/assets"
	"github.com/rabreu/mdsite/internal/config"
	"github.com/rabreu/mdsite/internal/fileutil"
	"github.com/rabreu/mdsite/internal/site"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrBadArgs         = errors.New("expected <file.md> or <indir> <outdir>")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrBuildIncomplete = errors.New("build finished with failures")
)

// run loads configuration, merges flags over it, and dispatches on the
// positional arguments: one means single-file conversion, two mean a batch
// build.
func run(ctx context.Context, f *cliFlags, logger *log.Logger) error {
	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.LoadConfig(f.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.Images.Timeout()
	if err != nil {
		return err
	}

	svc := mdsite.New(
		mdsite.WithFetchTimeout(timeout),
		mdsite.WithLogger(logger),
	)

	switch len(f.args) {
	case 0:
		return ErrNoInput
	case 1:
		return runConvert(ctx, svc, f.args[0])
	case 2:
		return runBuild(ctx, svc, cfg, logger, f.args[0], f.args[1])
	default:
		return fmt.Errorf("%w: got %d arguments", ErrBadArgs, len(f.args))
	}
}

// mergeFlags applies CLI flags over the loaded config (CLI wins).
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.baseURL != "" {
		cfg.Site.BaseURL = f.baseURL
	}
	if f.staticDir != "" {
		cfg.Static.Dir = f.staticDir
	}
	if f.templatesDir != "" {
		cfg.Templates.Dir = f.templatesDir
	}
	if f.fetchTimeout != "" {
		cfg.Images.FetchTimeout = f.fetchTimeout
	}
	if f.pdf {
		cfg.PDF.Enabled = true
	}
}

// runConvert converts one file and writes the HTML fragment to stdout.
// Warnings go to the log stream, never into the output.
func runConvert(ctx context.Context, svc *mdsite.Service, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	article, err := svc.Convert(ctx, mdsite.Input{
		Markdown: string(raw),
		BaseDir:  filepath.Dir(path),
	})
	if err != nil {
		return err
	}

	fmt.Print(article.HTML)
	return nil
}

// runBuild generates the whole site.
func runBuild(ctx context.Context, svc *mdsite.Service, cfg *config.Config, logger *log.Logger, inDir, outDir string) error {
	if cfg.Static.Dir != "" && !fileutil.DirExists(cfg.Static.Dir) {
		return fmt.Errorf("static directory %q: %w", cfg.Static.Dir, os.ErrNotExist)
	}
	if cfg.Templates.Dir != "" && !fileutil.DirExists(cfg.Templates.Dir) {
		return fmt.Errorf("templates directory %q: %w", cfg.Templates.Dir, os.ErrNotExist)
	}

	var loader assets.Loader = assets.NewEmbeddedLoader()
	if cfg.Templates.Dir != "" {
		loader = assets.NewDirLoader(cfg.Templates.Dir)
	}

	builder, err := site.New(svc, cfg, loader, logger)
	if err != nil {
		return err
	}
	defer builder.Close()

	result, err := builder.Build(ctx, inDir, outDir)
	if err != nil {
		return err
	}

	logger.Info("build complete",
		"pages", result.Pages,
		"copied", result.Copied,
		"failed", len(result.Failed))

	if len(result.Failed) > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrBuildIncomplete, len(result.Failed))
	}
	return nil
}
