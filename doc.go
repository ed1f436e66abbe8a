// Package mdsite converts Markdown articles into self-contained HTML.
//
// # Quick Start
//
// Create a service and convert a document:
//
//	svc := mdsite.New()
//	article, err := svc.Convert(ctx, mdsite.Input{
//	    Markdown: content,
//	    BaseDir:  "/path/to/articles", // for relative image paths
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(article.HTML)
//
// The result carries the rendered HTML plus the article metadata: the
// resolved title, the preamble paragraph used as the description, and any
// keys from the document's front matter.
//
// # Conversion Pipeline
//
// Each document moves through fixed stages:
//
//  1. Lone-first-line title extraction over the raw text
//  2. Markdown parsing via Goldmark (GFM, metadata block, highlighting)
//  3. Tree transforms: title resolution, preamble marking, image inlining
//  4. HTML serialization
//
// Title heuristics and image fetch problems never fail a conversion; they
// are logged as warnings and also returned on the Article. Only unparsable
// front matter or a rendering failure is fatal for a document.
//
// # Image Inlining
//
// Every image reference is rewritten to a data: URI embedding the image
// bytes: remote URLs are fetched with a bounded timeout, relative paths are
// read from Input.BaseDir. Already-inlined images pass through untouched, so
// converting twice produces identical output.
//
// # Site Generation
//
// The mdsite command builds a whole directory of articles into a static
// site (per-article pages, print variants, an index, and an RSS feed); see
// cmd/mdsite and internal/site.
package mdsite
