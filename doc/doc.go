// Package doc provides the intermediate representation (IR) for loaded
// document content.
//
// This package defines the data structures that sit between the document
// loaders and the markup emitter. A loader produces a [Document]; the
// emitter consumes it. The types are deliberately flat: a document is an ordered
// sequence of [Block] values, each block an ordered sequence of [Run] values.
//
// # Document Structure
//
// The [Document] type represents a complete article with metadata, body
// blocks, and a footnote table:
//
//	d := doc.NewDocument()
//	d.AddBlock(doc.Block{Kind: doc.KindHeading, Level: 1, StyleID: "Heading1"})
//
// # Blocks
//
// A [Block] is a paragraph-level unit. Its [BlockKind] says what it is:
//
//   - [KindParagraph] - a body paragraph
//   - [KindHeading] - a section heading (levels 1-5)
//   - [KindListItem] - one item of a list, with a 0-based nesting level
//   - [KindTable] - a table; rows of cells, each cell holding blocks
//
// # Runs
//
// A [Run] is a span of text sharing character formatting within a block.
// Runs carry the bold/italic/superscript flags and, when the run anchors a
// footnote, the footnote's identifier.
package doc
