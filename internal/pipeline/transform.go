package pipeline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// PreambleClass is the CSS class marking the preamble paragraph in the
// rendered HTML.
const PreambleClass = "article_preamble"

// ResolveTitle settles the document title on the State, applying the source
// precedence: a metadata `title` key silently overrides the pre-parse title;
// a level-1 heading that opens the document overrides both (with a warning
// when that discards an earlier candidate). A heading that appears later in
// the document is left in place and only warned about.
func ResolveTitle(doc *ParsedDoc, st *State) {
	if v, ok := MetaValue(doc.Meta, "title"); ok {
		st.Title = v
	}

	h1 := findHeading(doc.Root, 1)
	switch {
	case h1 == nil:
		if st.Title == "" {
			st.Warnf("article has no title")
		}
	case h1 != doc.Root.FirstChild():
		st.Warnf("disregarding late h1 title (%s)", FlattenText(h1, doc.Source))
	default:
		if st.Title != "" {
			st.Warnf("article has two titles (%s)", FlattenText(h1, doc.Source))
		}
		st.Title = FlattenText(h1, doc.Source)
	}
}

// ExtractPreamble records the first top-level paragraph's text as the
// preamble and tags the node for presentational styling. A `noarticle`
// metadata flag suppresses extraction; a document with no paragraph simply
// has an empty preamble.
func ExtractPreamble(doc *ParsedDoc, st *State) {
	if MetaHas(doc.Meta, "noarticle") {
		return
	}

	for c := doc.Root.FirstChild(); c != nil; c = c.NextSibling() {
		p, ok := c.(*ast.Paragraph)
		if !ok {
			continue
		}
		st.Preamble = FlattenText(p, doc.Source)
		p.SetAttributeString("class", []byte(PreambleClass))
		return
	}
}

// findHeading returns the first direct child heading of the given level.
func findHeading(root ast.Node, level int) ast.Node {
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if h, ok := c.(*ast.Heading); ok && h.Level == level {
			return h
		}
	}
	return nil
}

// FlattenText returns the plain text content of a node, tags stripped.
// Line breaks inside the node collapse to single spaces.
func FlattenText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// MetaHas reports whether the metadata block declares the key at all.
// Flags like `hidden` and `noarticle` count as set by mere presence.
func MetaHas(metadata map[string]any, key string) bool {
	_, ok := metadata[key]
	return ok
}

// MetaValue returns the string form of a metadata value. List values
// contribute their first element, matching metadata conventions where every
// key maps to a list of lines.
func MetaValue(metadata map[string]any, key string) (string, bool) {
	v, ok := metadata[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		if len(t) == 0 {
			return "", true
		}
		return fmt.Sprint(t[0]), true
	case nil:
		return "", true
	default:
		return fmt.Sprint(t), true
	}
}
