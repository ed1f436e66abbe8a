package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark/ast"
)

// dataURIPrefix marks an already-inlined image source.
const dataURIPrefix = "data:"

// DefaultFetchTimeout bounds remote image fetches so one unreachable host
// cannot hang a whole batch.
const DefaultFetchTimeout = 10 * time.Second

// Sentinel errors for image resolution.
var (
	ErrImageFetch  = errors.New("image fetch failed")
	ErrImageStatus = errors.New("unexpected image response status")
	ErrImageScheme = errors.New("unsupported image URL scheme")
	ErrImageRead   = errors.New("local image unreadable")
	ErrImageMIME   = errors.New("cannot determine image MIME type")
	ErrNoBaseDir   = errors.New("no base directory for local image")
)

// ResolvedImage is the outcome of a successful resolution: raw bytes and
// their MIME type. It exists only for the duration of a transform.
type ResolvedImage struct {
	Content  []byte
	MIMEType string
}

// DataURI encodes the image as a self-contained data: URI.
func (img *ResolvedImage) DataURI() string {
	return dataURIPrefix + img.MIMEType + ";base64," +
		base64.StdEncoding.EncodeToString(img.Content)
}

// ImageResolver retrieves image bytes for a src reference, either over HTTP
// or from a local base directory.
type ImageResolver struct {
	client *http.Client
}

// NewImageResolver creates a resolver whose remote fetches are bounded by
// the given timeout (DefaultFetchTimeout when zero or negative).
func NewImageResolver(timeout time.Duration) *ImageResolver {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &ImageResolver{client: &http.Client{Timeout: timeout}}
}

// Resolve retrieves the bytes and MIME type for src. An http(s) URL is
// fetched over the network; a reference without a scheme is read relative to
// baseDir with the MIME type guessed from its extension. Any other scheme
// fails. No retries: the first failure is terminal for the image.
func (r *ImageResolver) Resolve(ctx context.Context, src, baseDir string) (*ResolvedImage, error) {
	if u, err := url.Parse(src); err == nil {
		switch {
		case u.Scheme == "http" || u.Scheme == "https":
			return r.fetch(ctx, src)
		case len(u.Scheme) > 1:
			// Single-letter schemes are Windows drive letters, not URLs.
			return nil, fmt.Errorf("%w: %q", ErrImageScheme, u.Scheme)
		}
	}
	return readLocal(src, baseDir)
}

// fetch retrieves an image over HTTP. Only status 200 counts as success;
// the MIME type is the response's declared content type.
func (r *ImageResolver) fetch(ctx context.Context, src string) (*ResolvedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrImageStatus, resp.StatusCode, src)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}

	return &ResolvedImage{Content: content, MIMEType: resp.Header.Get("Content-Type")}, nil
}

// readLocal reads an image from disk relative to baseDir.
func readLocal(src, baseDir string) (*ResolvedImage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoBaseDir, src)
	}

	path := filepath.Join(baseDir, filepath.FromSlash(src))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrImageRead, path)
	}

	mimetype := mime.TypeByExtension(filepath.Ext(src))
	if mimetype == "" {
		return nil, fmt.Errorf("%w: %s", ErrImageMIME, src)
	}

	return &ResolvedImage{Content: content, MIMEType: mimetype}, nil
}

// InlineImages rewrites every image destination in the tree to an embedded
// data: URI. An empty or already-inlined src is left untouched, so repeated
// runs are idempotent. Resolution failures degrade to a warning with the
// destination unchanged; the document is never aborted.
func InlineImages(ctx context.Context, doc *ParsedDoc, resolver *ImageResolver, baseDir string, st *State) {
	_ = ast.Walk(doc.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}

		src := string(img.Destination)
		if src == "" || strings.HasPrefix(src, dataURIPrefix) {
			return ast.WalkContinue, nil
		}

		resolved, err := resolver.Resolve(ctx, src, baseDir)
		if err != nil {
			st.Warnf("unable to inline image %s: %v", src, err)
			return ast.WalkContinue, nil
		}

		img.Destination = []byte(resolved.DataURI())
		return ast.WalkContinue, nil
	})
}
