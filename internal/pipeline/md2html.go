package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for the parse and render stages.
var (
	ErrParse  = errors.New("markdown parse failed")
	ErrRender = errors.New("HTML rendering failed")
)

// ParsedDoc is one parsed document: the tree, the source it indexes into,
// and the metadata block mapping (nil when the document has none).
// The tree is owned by the conversion call; stages mutate it in turn.
type ParsedDoc struct {
	Root   ast.Node
	Source []byte
	Meta   map[string]any
}

// Converter wraps Goldmark, split into Parse and Render so the transform
// stages can mutate the tree between the two.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM, footnotes, a metadata block,
// and syntax highlighting.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			meta.Meta,          // Front-matter metadata block
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Articles are the author's own files; raw HTML passes through.
			html.WithUnsafe(),
		),
	)
	return &Converter{md: md}
}

// Parse converts Markdown source into a document tree plus its metadata
// block. A malformed metadata block is fatal for the document.
func (c *Converter) Parse(ctx context.Context, source []byte) (*ParsedDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pctx := parser.NewContext()
	root := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	metadata, err := meta.TryGet(pctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return &ParsedDoc{Root: root, Source: source, Meta: metadata}, nil
}

// Render serializes the (possibly mutated) tree to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *Converter) Render(ctx context.Context, doc *ParsedDoc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, doc.Source, doc.Root); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
