package docx

import (
	"testing"

	"github.com/pkale/galley/doc"
)

func TestNumberingResolver_Nil(t *testing.T) {
	nr := NewNumberingResolver(nil)

	if nr.IsOrdered("1", 0) {
		t.Error("IsOrdered() = true without numbering definitions")
	}
	if !nr.IsListParagraph("1") {
		t.Error("IsListParagraph(1) = false, want true")
	}
	if nr.IsListParagraph("0") {
		t.Error("IsListParagraph(0) = true, numId 0 cancels numbering")
	}
	if nr.IsListParagraph("") {
		t.Error("IsListParagraph(\"\") = true, want false")
	}
}

func TestNumberingResolver_IsOrdered(t *testing.T) {
	numbering := &numberingXML{
		AbstractNums: []abstractNumXML{
			{
				AbstractNumID: "10",
				Levels: []lvlXML{
					{ILvl: "0", NumFmt: numFmtXML{Val: "decimal"}},
					{ILvl: "1", NumFmt: numFmtXML{Val: "bullet"}},
					{ILvl: "2", NumFmt: numFmtXML{Val: "lowerRoman"}},
				},
			},
		},
		Nums: []numXML{
			{NumID: "1", AbstractNumID: abstractRefXML{Val: "10"}},
		},
	}
	nr := NewNumberingResolver(numbering)

	tests := []struct {
		numID string
		level int
		want  bool
	}{
		{"1", 0, true},  // decimal
		{"1", 1, false}, // bullet
		{"1", 2, true},  // lowerRoman
		{"1", 5, false}, // undefined level
		{"9", 0, false}, // unknown numId
	}

	for _, tt := range tests {
		if got := nr.IsOrdered(tt.numID, tt.level); got != tt.want {
			t.Errorf("IsOrdered(%q, %d) = %v, want %v", tt.numID, tt.level, got, tt.want)
		}
	}
}

func TestReader_Document_Lists(t *testing.T) {
	numbering := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:abstractNum w:abstractNumId="0">
    <w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>
  </w:abstractNum>
  <w:abstractNum w:abstractNumId="1">
    <w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl>
  </w:abstractNum>
  <w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
  <w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>
</w:numbering>`

	content := `<w:p>
  <w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>
  <w:r><w:t>bullet item</w:t></w:r>
</w:p>
<w:p>
  <w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>
  <w:r><w:t>numbered item</w:t></w:r>
</w:p>`
	docxPath := createTestDOCXWithParts(t, content, map[string]string{"word/numbering.xml": numbering})

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
	for i, b := range d.Blocks {
		if b.Kind != doc.KindListItem {
			t.Errorf("Blocks[%d].Kind = %v, want list item", i, b.Kind)
		}
	}
	if d.Blocks[0].Ordered {
		t.Error("bullet item classified as ordered")
	}
	if !d.Blocks[1].Ordered {
		t.Error("numbered item classified as unordered")
	}
}
