package docx

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkale/galley/doc"
)

// createTestDOCX creates a minimal DOCX file for testing.
func createTestDOCX(t *testing.T, content string) string {
	t.Helper()
	return createTestDOCXWithParts(t, content, nil)
}

// createTestDOCXWithParts creates a DOCX file with extra package parts
// (word/styles.xml, word/numbering.xml, word/footnotes.xml, ...) given as
// complete XML documents keyed by part name.
func createTestDOCXWithParts(t *testing.T, content string, extra map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	zw := zip.NewWriter(f)

	// [Content_Types].xml
	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	// _rels/.rels
	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	w, _ = zw.Create("_rels/.rels")
	w.Write([]byte(rels))

	// word/document.xml
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + content + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	for name, body := range extra {
		w, _ = zw.Create(name)
		w.Write([]byte(body))
	}

	zw.Close()
	f.Close()

	return docxPath
}

// stylesPart wraps style definitions in a complete word/styles.xml document.
func stylesPart(styles string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + styles + `</w:styles>`
}

func TestOpen(t *testing.T) {
	content := `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.document == nil {
		t.Error("document should not be nil")
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	if err == nil {
		t.Fatal("Open() should return error for nonexistent file")
	}

	var ffe *FileFormatError
	if !errors.As(err, &ffe) {
		t.Errorf("error = %T, want *FileFormatError", err)
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	tmpDir := t.TempDir()
	invalidPath := filepath.Join(tmpDir, "invalid.docx")
	os.WriteFile(invalidPath, []byte("not a zip file"), 0644)

	_, err := Open(invalidPath)
	if err == nil {
		t.Fatal("Open() should return error for invalid ZIP")
	}

	var ffe *FileFormatError
	if !errors.As(err, &ffe) {
		t.Errorf("error = %T, want *FileFormatError", err)
	}
}

func TestOpen_MissingDocumentXML(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "missing.docx")

	f, _ := os.Create(docxPath)
	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	zw.Close()
	f.Close()

	_, err := Open(docxPath)
	if err == nil {
		t.Error("Open() should return error when document.xml is missing")
	}
}

func TestReader_Document(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantKinds []doc.BlockKind
		wantTexts []string
	}{
		{
			name:      "simple paragraph",
			content:   `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph},
			wantTexts: []string{"Hello World"},
		},
		{
			name: "multiple paragraphs",
			content: `<w:p><w:r><w:t>First</w:t></w:r></w:p>
<w:p><w:r><w:t>Second</w:t></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph, doc.KindParagraph},
			wantTexts: []string{"First", "Second"},
		},
		{
			name: "multiple runs join",
			content: `<w:p>
  <w:r><w:t>Hello </w:t></w:r>
  <w:r><w:t>World</w:t></w:r>
</w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph},
			wantTexts: []string{"Hello World"},
		},
		{
			name: "empty paragraphs dropped",
			content: `<w:p><w:r><w:t>Kept</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph},
			wantTexts: []string{"Kept"},
		},
		{
			name:      "built-in heading style without styles.xml",
			content:   `<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Background</w:t></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindHeading},
			wantTexts: []string{"Background"},
		},
		{
			name:      "direct outline level",
			content:   `<w:p><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:r><w:t>Intro</w:t></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindHeading},
			wantTexts: []string{"Intro"},
		},
		{
			name:      "hyperlink runs included",
			content:   `<w:p><w:r><w:t>see </w:t></w:r><w:hyperlink><w:r><w:t>https://example.org</w:t></w:r></w:hyperlink></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph},
			wantTexts: []string{"see https://example.org"},
		},
		{
			name:      "mid-paragraph hyperlink keeps position",
			content:   `<w:p><w:r><w:t>siehe </w:t></w:r><w:hyperlink><w:r><w:t>https://example.org</w:t></w:r></w:hyperlink><w:r><w:t> dazu</w:t></w:r></w:p>`,
			wantKinds: []doc.BlockKind{doc.KindParagraph},
			wantTexts: []string{"siehe https://example.org dazu"},
		},
		{
			name:      "empty document",
			content:   ``,
			wantKinds: nil,
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docxPath := createTestDOCX(t, tt.content)

			r, err := Open(docxPath)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer r.Close()

			d, err := r.Document()
			if err != nil {
				t.Fatalf("Document() error = %v", err)
			}

			if len(d.Blocks) != len(tt.wantKinds) {
				t.Fatalf("len(Blocks) = %d, want %d", len(d.Blocks), len(tt.wantKinds))
			}
			for i, b := range d.Blocks {
				if b.Kind != tt.wantKinds[i] {
					t.Errorf("Blocks[%d].Kind = %v, want %v", i, b.Kind, tt.wantKinds[i])
				}
				if b.Text() != tt.wantTexts[i] {
					t.Errorf("Blocks[%d].Text() = %q, want %q", i, b.Text(), tt.wantTexts[i])
				}
			}
		})
	}
}

func TestReader_Document_HeadingLevel(t *testing.T) {
	content := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>One</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading3"/></w:pPr><w:r><w:t>Three</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	if len(d.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(d.Blocks))
	}
	if d.Blocks[0].Level != 1 {
		t.Errorf("Blocks[0].Level = %d, want 1", d.Blocks[0].Level)
	}
	if d.Blocks[1].Level != 3 {
		t.Errorf("Blocks[1].Level = %d, want 3", d.Blocks[1].Level)
	}
}

func TestReader_Document_StyleInheritance(t *testing.T) {
	styles := stylesPart(`
<w:style w:type="paragraph" w:styleId="Ueberschrift2">
  <w:name w:val="Ü2"/>
  <w:pPr><w:outlineLvl w:val="1"/></w:pPr>
</w:style>
<w:style w:type="paragraph" w:styleId="KapitelTitel">
  <w:name w:val="Kapiteltitel"/>
  <w:basedOn w:val="Ueberschrift2"/>
</w:style>`)

	content := `<w:p><w:pPr><w:pStyle w:val="KapitelTitel"/></w:pPr><w:r><w:t>Grundlagen</w:t></w:r></w:p>`
	docxPath := createTestDOCXWithParts(t, content, map[string]string{"word/styles.xml": styles})

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	if len(d.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(d.Blocks))
	}
	b := d.Blocks[0]
	if b.Kind != doc.KindHeading {
		t.Errorf("Kind = %v, want heading (inherited outline level)", b.Kind)
	}
	if b.Level != 2 {
		t.Errorf("Level = %d, want 2", b.Level)
	}
}

func TestReader_Document_RunFormatting(t *testing.T) {
	content := `<w:p>
  <w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>
  <w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r>
  <w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>plain</w:t></w:r>
  <w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr><w:t>sup</w:t></w:r>
</w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	runs := d.Blocks[0].Runs
	if len(runs) != 4 {
		t.Fatalf("len(Runs) = %d, want 4", len(runs))
	}
	if !runs[0].Bold || runs[0].Italic {
		t.Errorf("runs[0] = %+v, want bold only", runs[0])
	}
	if !runs[1].Italic || runs[1].Bold {
		t.Errorf("runs[1] = %+v, want italic only", runs[1])
	}
	if runs[2].Bold {
		t.Errorf(`runs[2].Bold = true, want false (w:val="false")`)
	}
	if !runs[3].Superscript {
		t.Errorf("runs[3].Superscript = false, want true")
	}
}

func TestReader_Document_Footnotes(t *testing.T) {
	footnotes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>
  <w:footnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:footnote>
  <w:footnote w:id="2"><w:p><w:r><w:t>Vgl. BGB Art. 1.</w:t></w:r></w:p></w:footnote>
</w:footnotes>`

	content := `<w:p>
  <w:r><w:t>Statement</w:t></w:r>
  <w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr><w:footnoteReference w:id="2"/></w:r>
  <w:r><w:t>.</w:t></w:r>
</w:p>`
	docxPath := createTestDOCXWithParts(t, content, map[string]string{"word/footnotes.xml": footnotes})

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.FootnoteCount() != 1 {
		t.Errorf("FootnoteCount() = %d, want 1 (separators skipped)", r.FootnoteCount())
	}

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	runs := d.Blocks[0].Runs
	var ref *doc.Run
	for i := range runs {
		if runs[i].FootnoteID != "" {
			ref = &runs[i]
		}
	}
	if ref == nil {
		t.Fatal("no run carries a footnote reference")
	}
	if ref.FootnoteID != "2" {
		t.Errorf("FootnoteID = %q, want %q", ref.FootnoteID, "2")
	}

	note, ok := d.Footnote("2")
	if !ok || len(note) != 1 {
		t.Fatalf("len(Footnote(2)) = %d, want 1", len(note))
	}
	if got := note[0].Text(); got != "Vgl. BGB Art. 1." {
		t.Errorf("footnote text = %q, want %q", got, "Vgl. BGB Art. 1.")
	}
}

func TestReader_Document_BodyOrder(t *testing.T) {
	content := `<w:p><w:r><w:t>Before</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>After</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	wantKinds := []doc.BlockKind{doc.KindParagraph, doc.KindTable, doc.KindParagraph}
	if len(d.Blocks) != len(wantKinds) {
		t.Fatalf("len(Blocks) = %d, want %d", len(d.Blocks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if d.Blocks[i].Kind != k {
			t.Errorf("Blocks[%d].Kind = %v, want %v", i, d.Blocks[i].Kind, k)
		}
	}
	if got := d.Blocks[1].Table.Rows[0].Cells[0].Text(); got != "Cell" {
		t.Errorf("table cell text = %q, want %q", got, "Cell")
	}
}

func TestReader_Document_Metadata(t *testing.T) {
	coreProps := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Zur Reform des Sachenrechts</dc:title>
  <dc:creator>A. Mueller</dc:creator>
</cp:coreProperties>`

	content := `<w:p><w:r><w:t>Body</w:t></w:r></w:p>`
	docxPath := createTestDOCXWithParts(t, content, map[string]string{"docProps/core.xml": coreProps})

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	if d.Metadata.Title != "Zur Reform des Sachenrechts" {
		t.Errorf("Title = %q", d.Metadata.Title)
	}
	if d.Metadata.Author != "A. Mueller" {
		t.Errorf("Author = %q", d.Metadata.Author)
	}
}

func TestReader_Document_EncodingError(t *testing.T) {
	// A carriage return survives XML parsing as a character reference but
	// cannot be carried into the markup output.
	content := `<w:p><w:r><w:t>bad&#xD;byte</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	_, err = r.Document()
	if err == nil {
		t.Fatal("Document() should reject control characters")
	}

	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %T, want *EncodingError", err)
	}
	if ee.Block != 0 {
		t.Errorf("EncodingError.Block = %d, want 0", ee.Block)
	}
	if ee.Offset != 3 {
		t.Errorf("EncodingError.Offset = %d, want 3", ee.Offset)
	}
}

func TestReader_Document_EncodingErrorInTable(t *testing.T) {
	content := `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>a&#xD;b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	_, err = r.Document()
	if err == nil {
		t.Fatal("Document() should reject control characters in table cells")
	}

	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %T, want *EncodingError", err)
	}
	if ee.Block != 0 {
		t.Errorf("EncodingError.Block = %d, want 0", ee.Block)
	}
	if ee.Footnote != "" {
		t.Errorf("EncodingError.Footnote = %q, want empty", ee.Footnote)
	}
}

func TestReader_Document_EncodingErrorInFootnote(t *testing.T) {
	footnotes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:footnote w:id="2"><w:p><w:r><w:t>bad&#xD;note</w:t></w:r></w:p></w:footnote>
</w:footnotes>`
	content := `<w:p><w:r><w:t>Claim</w:t></w:r><w:r><w:footnoteReference w:id="2"/></w:r></w:p>`
	docxPath := createTestDOCXWithParts(t, content, map[string]string{"word/footnotes.xml": footnotes})

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	_, err = r.Document()
	if err == nil {
		t.Fatal("Document() should reject control characters in footnotes")
	}

	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %T, want *EncodingError", err)
	}
	if ee.Footnote != "2" {
		t.Errorf("EncodingError.Footnote = %q, want %q", ee.Footnote, "2")
	}
}

func TestReader_Document_TabsAndBreaks(t *testing.T) {
	content := `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	d, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	// Run-internal order of t/tab/br elements is not tracked; text values
	// come first, then tabs.
	if got := d.Blocks[0].Text(); got != "ab\t" {
		t.Errorf("Text() = %q, want %q", got, "ab\t")
	}
}
