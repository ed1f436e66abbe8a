// Package assets provides the page templates and stylesheet used by site
// generation. Defaults ship embedded in the binary; a directory loader lets
// a site override them with its own files.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for asset loading.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Loader loads named page templates and styles.
// Names carry no extension: "article", "print", "index"; style "site".
type Loader interface {
	Template(name string) (string, error)
	Style(name string) (string, error)
}

//go:embed templates/*.html
var templates embed.FS

//go:embed styles/*.css
var styles embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) Template(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

func (e *EmbeddedLoader) Style(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// DirLoader serves assets from a directory, falling back to the embedded
// defaults for anything the directory does not provide.
type DirLoader struct {
	base     string
	fallback *EmbeddedLoader
}

// NewDirLoader creates a DirLoader rooted at base.
func NewDirLoader(base string) *DirLoader {
	return &DirLoader{base: base, fallback: NewEmbeddedLoader()}
}

func (d *DirLoader) Template(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := os.ReadFile(filepath.Join(d.base, name+".html"))
	if err != nil {
		return d.fallback.Template(name)
	}
	return string(content), nil
}

func (d *DirLoader) Style(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := os.ReadFile(filepath.Join(d.base, name+".css"))
	if err != nil {
		return d.fallback.Style(name)
	}
	return string(content), nil
}

// validateName rejects names that could escape the asset directories.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Loader = (*EmbeddedLoader)(nil)
	_ Loader = (*DirLoader)(nil)
)
