package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Elements preserves the original
// interleaved order of paragraphs and tables, which encoding/xml would
// otherwise collect into separate slices.
type bodyXML struct {
	Elements []bodyElement `xml:"-"`
}

// bodyElement represents one body-level element: a paragraph or a table.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML walks the body token stream so paragraphs and tables keep
// their document order.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>). Runs keeps the
// document order of run elements, with hyperlink runs flattened in place.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// UnmarshalXML walks the paragraph token stream so runs nested in
// hyperlinks keep their position among the paragraph's plain runs.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var rx runXML
				if err := d.DecodeElement(&rx, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, rx)
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, h.Runs...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style      styleRefXML       `xml:"pStyle"`
	NumPr      numberingPropsXML `xml:"numPr"`
	OutlineLvl outlineLvlXML     `xml:"outlineLvl"`
	RPr        runPropsXML       `xml:"rPr"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  ilvlXML  `xml:"ilvl"`
	NumID numIDXML `xml:"numId"`
}

// ilvlXML represents indentation level.
type ilvlXML struct {
	XMLName xml.Name `xml:"ilvl"`
	Val     string   `xml:"val,attr"`
}

// numIDXML represents numbering ID.
type numIDXML struct {
	Val string `xml:"val,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	XMLName xml.Name `xml:"outlineLvl"`
	Val     string   `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName           xml.Name      `xml:"r"`
	Properties        runPropsXML   `xml:"rPr"`
	Text              []textXML     `xml:"t"`
	Tabs              []tabXML      `xml:"tab"`
	Breaks            []breakXML    `xml:"br"`
	FootnoteReference *footnoteRefXML `xml:"footnoteReference"`
	EndnoteReference  *footnoteRefXML `xml:"endnoteReference"`
}

// footnoteRefXML represents a footnote or endnote anchor
// (<w:footnoteReference>, <w:endnoteReference>).
type footnoteRefXML struct {
	ID string `xml:"id,attr"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style     styleRefXML  `xml:"rStyle"`
	Bold      boolXML      `xml:"b"`
	Italic    boolXML      `xml:"i"`
	VertAlign vertAlignXML `xml:"vertAlign"`
}

// boolXML represents a boolean toggle property. Presence means true unless
// val says otherwise.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// set reports whether the toggle is present and not explicitly disabled.
func (b boolXML) set() bool {
	return b.XMLName.Local != "" && b.Val != "false" && b.Val != "0"
}

// vertAlignXML represents vertical run alignment (<w:vertAlign>).
type vertAlignXML struct {
	Val string `xml:"val,attr"` // superscript, subscript, baseline
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// tabXML represents a tab character.
type tabXML struct {
	XMLName xml.Name `xml:"tab"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"` // page, column, textWrapping
}

// hyperlinkXML represents a hyperlink.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName    xml.Name      `xml:"tbl"`
	Properties tablePropsXML `xml:"tblPr"`
	Rows       []tableRowXML `xml:"tr"`
}

// tablePropsXML represents table properties.
type tablePropsXML struct {
	Style styleRefXML `xml:"tblStyle"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Paragraphs []paragraphXML `xml:"p"`
}

// footnotesXML represents the structure of word/footnotes.xml (and, with the
// same shape, word/endnotes.xml).
type footnotesXML struct {
	XMLName   xml.Name      `xml:"footnotes"`
	Footnotes []footnoteXML `xml:"footnote"`
}

// endnotesXML represents word/endnotes.xml.
type endnotesXML struct {
	XMLName  xml.Name      `xml:"endnotes"`
	Endnotes []footnoteXML `xml:"endnote"`
}

// footnoteXML represents a single footnote or endnote definition.
type footnoteXML struct {
	ID         string         `xml:"id,attr"`
	Type       string         `xml:"type,attr"` // separator, continuationSeparator, or empty
	Paragraphs []paragraphXML `xml:"p"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}
