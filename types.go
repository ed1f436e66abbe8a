package mdsite

import "github.com/rabreu/mdsite/internal/pipeline"

// Metadata maps front-matter keys to values for one article. After a
// conversion it always carries the derived "title" and "description" keys
// as strings, overwriting raw front-matter entries of the same name.
type Metadata map[string]any

// Title returns the resolved article title ("" when none was found).
func (m Metadata) Title() string {
	v, _ := pipeline.MetaValue(m, "title")
	return v
}

// Description returns the preamble text ("" when the document has none).
func (m Metadata) Description() string {
	v, _ := pipeline.MetaValue(m, "description")
	return v
}

// Listed reports whether the article belongs on the index and in the feed.
// The `hidden` and `noarticle` flags both suppress listing; their mere
// presence counts, whatever the value.
func (m Metadata) Listed() bool {
	return !pipeline.MetaHas(m, "hidden") && !pipeline.MetaHas(m, "noarticle")
}

// Input is one document to convert.
type Input struct {
	// Markdown is the raw article text. Required.
	Markdown string

	// BaseDir is the directory relative image paths resolve against.
	// Empty disables local image inlining.
	BaseDir string
}

// Article is the outcome of one conversion.
type Article struct {
	// HTML is the rendered article body fragment.
	HTML string

	// Metadata merges the document's front matter with the derived
	// "title" and "description" keys.
	Metadata Metadata

	// Title and Description repeat the derived values for direct access.
	Title       string
	Description string

	// Warnings lists the non-fatal diagnostics emitted while converting.
	Warnings []string
}
