// Package docx provides DOCX (Office Open XML) document parsing.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pkale/galley/doc"
)

// Reader provides access to DOCX document content.
type Reader struct {
	path      string
	zipReader *zip.ReadCloser
	document  *documentXML
	styles    *stylesXML
	numbering *numberingXML
	footnotes map[string][]paragraphXML
	endnotes  map[string][]paragraphXML
	coreProps *corePropertiesXML

	resolver  *StyleResolver
	numbers   *NumberingResolver
	tables    *TableParser
}

// Open opens a DOCX file for reading. A file that is not a valid DOCX
// package fails with a *FileFormatError.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, &FileFormatError{Path: filename, Reason: "not a ZIP archive", Err: err}
	}

	r := &Reader{
		path:      filename,
		zipReader: zr,
		footnotes: make(map[string][]paragraphXML),
		endnotes:  make(map[string][]paragraphXML),
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, &FileFormatError{Path: filename, Reason: "parsing document", Err: err}
	}

	// Styles, numbering, footnotes, and metadata are optional parts.
	r.parseStyles()
	r.parseNumbering()
	r.parseFootnotes()
	r.parseCoreProperties()

	r.resolver = NewStyleResolver(r.styles)
	r.numbers = NewNumberingResolver(r.numbering)
	r.tables = NewTableParser(r)

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

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return &FileFormatError{Path: r.path, Reason: "missing required file " + name}
		}
	}

	return nil
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

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return
	}

	r.styles = &stylesXML{}
	xml.Unmarshal(data, r.styles)
}

// parseNumbering parses the numbering definitions file.
func (r *Reader) parseNumbering() {
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		return
	}

	r.numbering = &numberingXML{}
	xml.Unmarshal(data, r.numbering)
}

// parseFootnotes parses the footnote and endnote definition files. Word
// stores separator pseudo-notes alongside real notes; those are skipped.
func (r *Reader) parseFootnotes() {
	if data, err := r.getFileContent("word/footnotes.xml"); err == nil {
		var fns footnotesXML
		if xml.Unmarshal(data, &fns) == nil {
			for _, fn := range fns.Footnotes {
				if fn.Type != "" {
					continue
				}
				r.footnotes[fn.ID] = fn.Paragraphs
			}
		}
	}

	if data, err := r.getFileContent("word/endnotes.xml"); err == nil {
		var ens endnotesXML
		if xml.Unmarshal(data, &ens) == nil {
			for _, en := range ens.Endnotes {
				if en.Type != "" {
					continue
				}
				r.endnotes[en.ID] = en.Paragraphs
			}
		}
	}
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	r.coreProps = &corePropertiesXML{}
	xml.Unmarshal(data, r.coreProps)
}

// FootnoteCount returns the number of real footnotes and endnotes found.
func (r *Reader) FootnoteCount() int {
	return len(r.footnotes) + len(r.endnotes)
}

// Document converts the parsed package into a doc.Document, with body
// blocks in their original order and footnotes resolved into the footnote
// table. Empty paragraphs are dropped.
func (r *Reader) Document() (*doc.Document, error) {
	d := doc.NewDocument()

	if r.coreProps != nil {
		d.Metadata.Title = r.coreProps.Title
		d.Metadata.Author = r.coreProps.Creator
		d.Metadata.Subject = r.coreProps.Subject
	}

	if r.document == nil || r.document.Body == nil {
		return d, nil
	}

	for _, el := range r.document.Body.Elements {
		switch {
		case el.Paragraph != nil:
			block := r.processParagraph(*el.Paragraph, false)
			if block.IsEmpty() {
				continue
			}
			d.AddBlock(block)
		case el.Table != nil:
			d.AddBlock(doc.Block{
				Kind:    doc.KindTable,
				StyleID: el.Table.Properties.Style.Val,
				Table:   r.tables.ParseTable(*el.Table),
			})
		}
	}

	for id, paras := range r.footnotes {
		d.Footnotes[id] = r.noteBlocks(paras)
	}
	for id, paras := range r.endnotes {
		d.Footnotes[id] = r.noteBlocks(paras)
	}

	if err := validateEncoding(d); err != nil {
		return nil, err
	}

	return d, nil
}

// noteBlocks converts footnote paragraphs to blocks. Footnote references
// inside footnotes are ignored.
func (r *Reader) noteBlocks(paras []paragraphXML) []doc.Block {
	var blocks []doc.Block
	for _, p := range paras {
		block := r.processParagraph(p, true)
		if block.IsEmpty() {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// processParagraph converts a single paragraph element to a doc.Block,
// classifying it from its style and direct properties. Direct formatting
// overrides the style.
func (r *Reader) processParagraph(p paragraphXML, ignoreFootnotes bool) doc.Block {
	block := doc.Block{
		Kind:    doc.KindParagraph,
		StyleID: p.Properties.Style.Val,
	}

	style := r.resolver.Resolve(block.StyleID)

	switch {
	case style.IsSection:
		block.Kind = doc.KindHeading
		block.Level = style.SectionLevel
	case style.IsList:
		block.Kind = doc.KindListItem
		block.Level = style.ListLevel
	}

	// Direct paragraph properties override the style classification.
	if p.Properties.OutlineLvl.XMLName.Local != "" {
		if level := parseOutlineLevel(p.Properties.OutlineLvl.Val); level >= 0 {
			block.Kind = doc.KindHeading
			block.Level = level + 1
		}
	}
	if block.Kind != doc.KindHeading && r.numbers.IsListParagraph(p.Properties.NumPr.NumID.Val) {
		block.Kind = doc.KindListItem
		block.Level = parseLevel(p.Properties.NumPr.ILvl.Val)
		block.Ordered = r.numbers.IsOrdered(p.Properties.NumPr.NumID.Val, block.Level)
	}

	// Paragraph-level character formatting. Sections render through the
	// heading command, so bold there is redundant.
	if block.Kind != doc.KindHeading {
		block.Bold = style.Bold || p.Properties.RPr.Bold.set()
	}
	block.Italic = style.Italic || p.Properties.RPr.Italic.set()

	block.Runs = r.processRuns(p, ignoreFootnotes)

	return block
}

// processRuns extracts the runs of a paragraph, preserving document order.
// Hyperlink runs are already flattened into the run sequence by the
// paragraph unmarshaller.
func (r *Reader) processRuns(p paragraphXML, ignoreFootnotes bool) []doc.Run {
	var runs []doc.Run

	for _, rx := range p.Runs {
		run := r.processRun(rx, ignoreFootnotes)
		if run.Text == "" && run.FootnoteID == "" {
			continue
		}
		runs = append(runs, run)
	}

	return runs
}

// processRun converts a single run element, resolving its character style
// and direct formatting.
func (r *Reader) processRun(rx runXML, ignoreFootnotes bool) doc.Run {
	run := doc.Run{
		Text: r.extractRunText(rx),
	}

	if rx.Properties.Style.Val != "" {
		style := r.resolver.Resolve(rx.Properties.Style.Val)
		run.Bold = style.Bold
		run.Italic = style.Italic
	}

	if rx.Properties.Bold.set() {
		run.Bold = true
	}
	if rx.Properties.Italic.set() {
		run.Italic = true
	}
	if rx.Properties.VertAlign.Val == "superscript" {
		run.Superscript = true
	}

	if !ignoreFootnotes {
		if rx.FootnoteReference != nil {
			run.FootnoteID = rx.FootnoteReference.ID
		} else if rx.EndnoteReference != nil {
			run.FootnoteID = rx.EndnoteReference.ID
		}
	}

	return run
}

// extractRunText extracts text from a run element, NFC-normalized.
func (r *Reader) extractRunText(rx runXML) string {
	var parts []string

	for _, t := range rx.Text {
		parts = append(parts, t.Value)
	}

	for range rx.Tabs {
		parts = append(parts, "\t")
	}

	for range rx.Breaks {
		parts = append(parts, "\n")
	}

	return norm.NFC.String(strings.Join(parts, ""))
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
