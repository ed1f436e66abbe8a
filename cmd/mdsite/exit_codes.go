package main

import (
	"errors"
	"os"

	mdsite "github.com/rabreu/mdsite"
	"github.com/rabreu/mdsite/internal/assets"
	"github.com/rabreu/mdsite/internal/config"
	"github.com/rabreu/mdsite/internal/site"
)

// Exit codes for the mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error, including partial builds
	ExitUsage   = 2 // Invalid flags, config, or arguments
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, site.ErrBrowserConnect) ||
		errors.Is(err, site.ErrPageCreate) ||
		errors.Is(err, site.ErrPageLoad) ||
		errors.Is(err, site.ErrPDFRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, site.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrBadArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, mdsite.ErrEmptyMarkdown) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, site.ErrTemplateParse) {
		return ExitUsage
	}

	return ExitGeneral
}
