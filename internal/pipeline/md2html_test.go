package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("front matter becomes metadata", func(t *testing.T) {
		source := "---\ntitle: Hello\nhidden: true\n---\n\nBody."
		doc, err := NewConverter().Parse(context.Background(), []byte(source))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got, _ := MetaValue(doc.Meta, "title"); got != "Hello" {
			t.Errorf("title = %q, want %q", got, "Hello")
		}
		if !MetaHas(doc.Meta, "hidden") {
			t.Error("hidden flag missing from metadata")
		}
	})

	t.Run("document without front matter has no metadata", func(t *testing.T) {
		doc, err := NewConverter().Parse(context.Background(), []byte("Just a body."))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(doc.Meta) != 0 {
			t.Errorf("metadata = %v, want empty", doc.Meta)
		}
	})

	t.Run("malformed front matter fails", func(t *testing.T) {
		source := "---\ntitle: [unclosed\n---\n\nBody."
		_, err := NewConverter().Parse(context.Background(), []byte(source))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Parse() error = %v, want ErrParse", err)
		}
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewConverter().Parse(ctx, []byte("Body."))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Parse() error = %v, want context.Canceled", err)
		}
	})
}

func TestRender(t *testing.T) {
	render := func(t *testing.T, source string) string {
		t.Helper()
		c := NewConverter()
		doc, err := c.Parse(context.Background(), []byte(source))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		html, err := c.Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		return html
	}

	t.Run("heading", func(t *testing.T) {
		html := render(t, "# Hello\nand text")
		if !strings.Contains(html, "<h1") || !strings.Contains(html, "Hello") {
			t.Errorf("heading missing from output: %q", html)
		}
	})

	t.Run("GFM table", func(t *testing.T) {
		html := render(t, "| a | b |\n|---|---|\n| 1 | 2 |")
		if !strings.Contains(html, "<table>") {
			t.Errorf("table missing from output: %q", html)
		}
	})

	t.Run("fenced code gets chroma classes", func(t *testing.T) {
		html := render(t, "```go\npackage main\n```")
		if !strings.Contains(html, `class="chroma"`) {
			t.Errorf("highlight classes missing from output: %q", html)
		}
	})

	t.Run("raw HTML passes through", func(t *testing.T) {
		html := render(t, "text with <em>markup</em> inline")
		if !strings.Contains(html, "<em>markup</em>") {
			t.Errorf("inline HTML escaped: %q", html)
		}
	})
}
