package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// pngBytes is a minimal valid PNG header, enough to stand in for real
// image content.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestResolvedImageDataURI(t *testing.T) {
	img := &ResolvedImage{Content: pngBytes, MIMEType: "image/png"}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	if got := img.DataURI(); got != want {
		t.Errorf("DataURI() = %q, want %q", got, want)
	}
}

func TestResolveRemote(t *testing.T) {
	t.Run("status 200 yields content and declared MIME type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngBytes)
		}))
		defer srv.Close()

		resolver := NewImageResolver(0)
		img, err := resolver.Resolve(context.Background(), srv.URL+"/pic.png", "")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if img.MIMEType != "image/png" {
			t.Errorf("MIMEType = %q, want %q", img.MIMEType, "image/png")
		}
		if string(img.Content) != string(pngBytes) {
			t.Errorf("Content = %v, want %v", img.Content, pngBytes)
		}
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		resolver := NewImageResolver(0)
		_, err := resolver.Resolve(context.Background(), srv.URL+"/missing.png", "")
		if !errors.Is(err, ErrImageStatus) {
			t.Errorf("Resolve() error = %v, want ErrImageStatus", err)
		}
	})

	t.Run("unreachable host fails", func(t *testing.T) {
		resolver := NewImageResolver(time.Second)
		_, err := resolver.Resolve(context.Background(), "http://127.0.0.1:1/pic.png", "")
		if !errors.Is(err, ErrImageFetch) {
			t.Errorf("Resolve() error = %v, want ErrImageFetch", err)
		}
	})
}

func TestResolveLocal(t *testing.T) {
	t.Run("file read relative to base directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "pic.png"), pngBytes, 0o600); err != nil {
			t.Fatal(err)
		}

		resolver := NewImageResolver(0)
		img, err := resolver.Resolve(context.Background(), "pic.png", dir)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if img.MIMEType != "image/png" {
			t.Errorf("MIMEType = %q, want %q", img.MIMEType, "image/png")
		}
	})

	t.Run("missing base directory fails", func(t *testing.T) {
		resolver := NewImageResolver(0)
		_, err := resolver.Resolve(context.Background(), "pic.png", "")
		if !errors.Is(err, ErrNoBaseDir) {
			t.Errorf("Resolve() error = %v, want ErrNoBaseDir", err)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		resolver := NewImageResolver(0)
		_, err := resolver.Resolve(context.Background(), "pic.png", t.TempDir())
		if !errors.Is(err, ErrImageRead) {
			t.Errorf("Resolve() error = %v, want ErrImageRead", err)
		}
	})

	t.Run("unknown extension fails", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "pic.zqx"), pngBytes, 0o600); err != nil {
			t.Fatal(err)
		}

		resolver := NewImageResolver(0)
		_, err := resolver.Resolve(context.Background(), "pic.zqx", dir)
		if !errors.Is(err, ErrImageMIME) {
			t.Errorf("Resolve() error = %v, want ErrImageMIME", err)
		}
	})
}

func TestResolveScheme(t *testing.T) {
	resolver := NewImageResolver(0)
	_, err := resolver.Resolve(context.Background(), "ftp://example.com/pic.png", "")
	if !errors.Is(err, ErrImageScheme) {
		t.Errorf("Resolve() error = %v, want ErrImageScheme", err)
	}
}

func TestInlineImages(t *testing.T) {
	t.Run("local image becomes data URI", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "pic.png"), pngBytes, 0o600); err != nil {
			t.Fatal(err)
		}

		doc := parseDoc(t, "Look:\nat this.\n\n![alt](pic.png)")
		st := &State{}
		InlineImages(context.Background(), doc, NewImageResolver(0), dir, st)

		html, err := NewConverter().Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(html, "data:image/png;base64,") {
			t.Errorf("image not inlined, got %q", html)
		}
		if len(st.Warnings) != 0 {
			t.Errorf("warnings = %v, want none", st.Warnings)
		}
	})

	t.Run("data URI source is left untouched", func(t *testing.T) {
		src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
		doc := parseDoc(t, "![alt]("+src+")")
		st := &State{}
		InlineImages(context.Background(), doc, NewImageResolver(0), "", st)

		html, err := NewConverter().Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(html, src) {
			t.Errorf("data URI rewritten, got %q", html)
		}
		if len(st.Warnings) != 0 {
			t.Errorf("warnings = %v, want none", st.Warnings)
		}
	})

	t.Run("resolution failure warns and keeps original source", func(t *testing.T) {
		doc := parseDoc(t, "Before.\nstill before.\n\n![alt](missing.png)\n\nAfter.")
		st := &State{}
		InlineImages(context.Background(), doc, NewImageResolver(0), t.TempDir(), st)

		html, err := NewConverter().Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(html, `src="missing.png"`) {
			t.Errorf("failed image should keep its source, got %q", html)
		}
		if len(st.Warnings) != 1 || !strings.Contains(st.Warnings[0], "missing.png") {
			t.Errorf("warnings = %v, want one naming the image", st.Warnings)
		}
	})
}
