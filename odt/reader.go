// Package odt provides ODT (OpenDocument Text) document parsing.
package odt

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pkale/galley/doc"
)

// Reader provides access to ODT document content.
type Reader struct {
	path      string
	zipReader *zip.ReadCloser
	content   *documentXML
	docStyles *stylesXML
	meta      *metaXML

	resolver *StyleResolver
	noteSeq  int
}

// Open opens an ODT file for reading. A file that is not a valid ODT
// package fails with a *FileFormatError.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, &FileFormatError{Path: filename, Reason: "not a ZIP archive", Err: err}
	}

	r := &Reader{
		path:      filename,
		zipReader: zr,
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseContent(); err != nil {
		zr.Close()
		return nil, &FileFormatError{Path: filename, Reason: "parsing content", Err: err}
	}

	// Named styles and metadata are optional parts.
	r.parseStyles()
	r.parseMetadata()

	var contentStyles *contentStylesXML
	if r.content != nil {
		contentStyles = r.content.AutoStyles
	}
	r.resolver = NewStyleResolver(contentStyles, r.docStyles)

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// Resolver returns the style resolver for the document's styles.
func (r *Reader) Resolver() *StyleResolver {
	return r.resolver
}

// validate checks that required ODT files exist.
func (r *Reader) validate() error {
	for _, f := range r.zipReader.File {
		if f.Name == "content.xml" {
			return nil
		}
	}
	return &FileFormatError{Path: r.path, Reason: "missing required file content.xml"}
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseContent parses content.xml: automatic styles plus the ordered body.
func (r *Reader) parseContent() error {
	data, err := r.getFileContent("content.xml")
	if err != nil {
		return err
	}

	r.content = &documentXML{}
	if err := xml.Unmarshal(data, r.content); err != nil {
		return fmt.Errorf("unmarshaling content.xml: %w", err)
	}

	return nil
}

// parseStyles parses the named styles file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("styles.xml")
	if err != nil {
		return
	}

	r.docStyles = &stylesXML{}
	xml.Unmarshal(data, r.docStyles)
}

// parseMetadata parses Dublin Core metadata.
func (r *Reader) parseMetadata() {
	data, err := r.getFileContent("meta.xml")
	if err != nil {
		return
	}

	r.meta = &metaXML{}
	xml.Unmarshal(data, r.meta)
}

// Document converts the parsed package into a doc.Document, with body
// blocks in their original order. ODF stores note bodies inline at their
// anchors; they are lifted into the footnote table as they are met.
// Empty paragraphs are dropped.
func (r *Reader) Document() (*doc.Document, error) {
	d := doc.NewDocument()

	if r.meta != nil && r.meta.Meta != nil {
		d.Metadata.Title = r.meta.Meta.Title
		d.Metadata.Subject = r.meta.Meta.Subject
		d.Metadata.Author = r.meta.Meta.Creator
		if d.Metadata.Author == "" {
			d.Metadata.Author = r.meta.Meta.InitialCreator
		}
	}

	if r.content == nil || r.content.Body == nil || r.content.Body.Text == nil {
		return d, nil
	}

	for _, el := range r.content.Body.Text.Elements {
		switch {
		case el.Heading != nil:
			block := r.processHeading(*el.Heading, d)
			if block.IsEmpty() {
				continue
			}
			d.AddBlock(block)
		case el.Paragraph != nil:
			block := r.processParagraph(*el.Paragraph, d, false)
			if block.IsEmpty() {
				continue
			}
			d.AddBlock(block)
		case el.List != nil:
			r.processList(*el.List, 0, "", d)
		case el.Table != nil:
			d.AddBlock(doc.Block{
				Kind:  doc.KindTable,
				Table: r.parseTable(*el.Table, d),
			})
		}
	}

	if err := validateEncoding(d); err != nil {
		return nil, err
	}

	return d, nil
}

// processHeading converts a heading element. The outline-level attribute
// wins over the style classification.
func (r *Reader) processHeading(h headingXML, d *doc.Document) doc.Block {
	block := doc.Block{
		Kind:    doc.KindHeading,
		StyleID: r.resolver.NamedAncestor(h.StyleName),
	}

	if level, err := strconv.Atoi(h.OutlineLevel); err == nil && level >= 1 && level <= 9 {
		block.Level = level
	} else if style := r.resolver.Resolve(h.StyleName); style.IsSection {
		block.Level = style.SectionLevel
	} else {
		block.Level = 1
	}

	block.Runs = r.processSegments(h.Segments, d, false)
	return block
}

// processParagraph converts a paragraph element to a doc.Block, classifying
// it from its resolved style.
func (r *Reader) processParagraph(p paragraphXML, d *doc.Document, inNote bool) doc.Block {
	block := doc.Block{
		Kind:    doc.KindParagraph,
		StyleID: r.resolver.NamedAncestor(p.StyleName),
	}

	style := r.resolver.Resolve(p.StyleName)
	if style.IsSection {
		block.Kind = doc.KindHeading
		block.Level = style.SectionLevel
	}

	// Sections render through the heading command, so bold there is
	// redundant.
	if block.Kind != doc.KindHeading {
		block.Bold = style.Bold
	}
	block.Italic = style.Italic

	block.Runs = r.processSegments(p.Segments, d, inNote)
	return block
}

// processSegments converts inline segments to runs, registering note bodies
// in the footnote table as their anchors are met. Notes inside notes are
// ignored.
func (r *Reader) processSegments(segs []segmentXML, d *doc.Document, inNote bool) []doc.Run {
	var runs []doc.Run

	for _, s := range segs {
		if s.Note != nil {
			if inNote {
				continue
			}
			if id := r.registerNote(s.Note, d); id != "" {
				runs = append(runs, doc.Run{FootnoteID: id})
			}
			continue
		}

		text := norm.NFC.String(s.Text)
		if text == "" {
			continue
		}

		run := doc.Run{Text: text}
		if s.StyleName != "" {
			style := r.resolver.Resolve(s.StyleName)
			run.Bold = style.Bold
			run.Italic = style.Italic
			run.Superscript = style.Superscript
		}
		runs = append(runs, run)
	}

	return runs
}

// registerNote lifts a note body into the document's footnote table and
// returns the identifier its anchor run should carry. Footnotes and
// endnotes both land in the same table.
func (r *Reader) registerNote(n *noteXML, d *doc.Document) string {
	id := n.ID
	if id == "" {
		r.noteSeq++
		id = fmt.Sprintf("note%d", r.noteSeq)
	}

	var blocks []doc.Block
	for _, p := range n.Body.Paragraphs {
		block := r.processParagraph(p, d, true)
		if block.IsEmpty() {
			continue
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return ""
	}

	d.Footnotes[id] = blocks
	return id
}

// processList flattens a list into list-item blocks, recursing into nested
// lists with the level incremented. A nested list without its own style
// inherits the outer list style.
func (r *Reader) processList(l listXML, level int, inheritedStyle string, d *doc.Document) {
	styleName := l.StyleName
	if styleName == "" {
		styleName = inheritedStyle
	}
	ordered := r.resolver.IsOrderedList(styleName, level)

	for _, item := range l.Items {
		for _, p := range item.Paragraphs {
			block := r.processParagraph(p, d, false)
			if block.IsEmpty() {
				continue
			}
			block.Kind = doc.KindListItem
			block.Level = level
			block.Ordered = ordered
			d.AddBlock(block)
		}
		for _, sub := range item.SubLists {
			r.processList(sub, level+1, styleName, d)
		}
	}
}

// parseTable parses a table element. Cell paragraphs go through the same
// classification as body paragraphs, so note anchors and character
// formatting inside cells survive.
func (r *Reader) parseTable(t tableXML, d *doc.Document) *doc.Table {
	table := &doc.Table{}

	for _, row := range t.Rows {
		parsedRow := doc.TableRow{}
		for _, cell := range row.Cells {
			parsedCell := doc.TableCell{}
			for _, p := range cell.Paragraphs {
				block := r.processParagraph(p, d, false)
				if block.IsEmpty() {
					continue
				}
				parsedCell.Blocks = append(parsedCell.Blocks, block)
			}
			parsedRow.Cells = append(parsedRow.Cells, parsedCell)
		}
		table.Rows = append(table.Rows, parsedRow)
	}

	return table
}

// validateEncoding checks every block's text, including table cells and
// footnote content, for byte sequences that cannot survive the trip to
// markup output.
func validateEncoding(d *doc.Document) error {
	for i, b := range d.Blocks {
		if err := validateBlock(b, i, ""); err != nil {
			return err
		}
	}
	for id, blocks := range d.Footnotes {
		for _, b := range blocks {
			if err := validateBlock(b, -1, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateBlock checks one block's text, recursing into table cells.
func validateBlock(b doc.Block, index int, footnoteID string) error {
	if off := invalidOffset(b.Text()); off >= 0 {
		return &EncodingError{Block: index, Offset: off, Footnote: footnoteID}
	}
	if b.Table == nil {
		return nil
	}
	for _, row := range b.Table.Rows {
		for _, cell := range row.Cells {
			for _, cb := range cell.Blocks {
				if err := validateBlock(cb, index, footnoteID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// invalidOffset returns the offset of the first invalid UTF-8 sequence or
// disallowed control character in s, or -1 if the text is clean.
func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return i
			}
		}
		if r < 0x20 && r != '\t' && r != '\n' {
			return i
		}
	}
	return -1
}
