// Package pipeline implements the article transform pipeline.
//
// A document moves through three fixed stages:
//   - pre-parse: the lone-first-line title rule over the raw line buffer
//   - parse: Markdown to AST plus metadata block via Goldmark
//   - post-parse: title resolution, preamble extraction, and image inlining
//     over the tree, followed by HTML serialization
//
// Each conversion owns a fresh State; nothing is carried between documents,
// so a reused Converter never leaks one article's title or preamble into the
// next. Title heuristics and image failures degrade to warnings collected on
// the State; only parsing and rendering themselves can fail a document.
package pipeline
