package odt

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// documentXML represents the structure of content.xml
type documentXML struct {
	XMLName    xml.Name          `xml:"document-content"`
	AutoStyles *contentStylesXML `xml:"automatic-styles"`
	Body       *bodyXML          `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Text *textBodyXML `xml:"text"`
}

// textBodyXML represents the text body. Elements preserves the original
// interleaved order of paragraphs, headings, lists, and tables.
type textBodyXML struct {
	Elements []bodyElement `xml:"-"`
}

// bodyElement represents one body-level element.
type bodyElement struct {
	Paragraph *paragraphXML
	Heading   *headingXML
	List      *listXML
	Table     *tableXML
}

// UnmarshalXML walks the body token stream so body elements keep their
// document order.
func (b *textBodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "h":
				var h headingXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Heading: &h})
			case "list":
				var l listXML
				if err := d.DecodeElement(&l, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{List: &l})
			case "table":
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

// segmentXML is one inline piece of a paragraph or heading: a stretch of
// text carrying the innermost span style, or a footnote anchor.
type segmentXML struct {
	Text      string
	StyleName string
	Note      *noteXML
}

// paragraphXML represents a paragraph element (<text:p>).
type paragraphXML struct {
	StyleName string
	Segments  []segmentXML
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.StyleName = attrValue(start, "style-name")
	segs, err := walkInline(d, start)
	p.Segments = segs
	return err
}

// headingXML represents a heading element (<text:h>).
type headingXML struct {
	StyleName    string
	OutlineLevel string
	Segments     []segmentXML
}

func (h *headingXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	h.StyleName = attrValue(start, "style-name")
	h.OutlineLevel = attrValue(start, "outline-level")
	segs, err := walkInline(d, start)
	h.Segments = segs
	return err
}

// walkInline reads the inline content of a paragraph or heading, keeping
// text, spans, and note anchors in document order. Spans and links nest;
// text inherits the innermost span style.
func walkInline(d *xml.Decoder, start xml.StartElement) ([]segmentXML, error) {
	var segs []segmentXML
	var styles []string

	currentStyle := func() string {
		if len(styles) == 0 {
			return ""
		}
		return styles[len(styles)-1]
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return segs, err
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(t) > 0 {
				segs = append(segs, segmentXML{Text: string(t), StyleName: currentStyle()})
			}

		case xml.StartElement:
			switch t.Name.Local {
			case "span":
				styles = append(styles, attrValue(t, "style-name"))
			case "a":
				// Links contribute their text with the surrounding style.
				styles = append(styles, currentStyle())
			case "note":
				var n noteXML
				if err := d.DecodeElement(&n, &t); err != nil {
					return segs, err
				}
				segs = append(segs, segmentXML{Note: &n})
			case "s":
				count := 1
				if c := attrValue(t, "c"); c != "" {
					if n, err := strconv.Atoi(c); err == nil && n > 0 {
						count = n
					}
				}
				segs = append(segs, segmentXML{Text: strings.Repeat(" ", count), StyleName: currentStyle()})
			case "tab":
				segs = append(segs, segmentXML{Text: "\t", StyleName: currentStyle()})
			case "line-break":
				segs = append(segs, segmentXML{Text: "\n", StyleName: currentStyle()})
			default:
				if err := d.Skip(); err != nil {
					return segs, err
				}
			}

		case xml.EndElement:
			if t.Name == start.Name {
				return segs, nil
			}
			switch t.Name.Local {
			case "span", "a":
				if len(styles) > 0 {
					styles = styles[:len(styles)-1]
				}
			}
		}
	}
}

// attrValue returns the value of the named attribute, any namespace.
func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// noteXML represents a footnote or endnote (<text:note>). Unlike DOCX,
// ODF stores the note body inline at its anchor.
type noteXML struct {
	ID    string      `xml:"id,attr"`
	Class string      `xml:"note-class,attr"` // footnote or endnote
	Body  noteBodyXML `xml:"note-body"`
}

// noteBodyXML represents the content of a note.
type noteBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// listXML represents a list (<text:list>).
type listXML struct {
	XMLName   xml.Name      `xml:"list"`
	StyleName string        `xml:"style-name,attr"`
	Items     []listItemXML `xml:"list-item"`
}

// listItemXML represents a list item, possibly holding nested lists.
type listItemXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	SubLists   []listXML      `xml:"list"`
}

// tableXML represents a table (<table:table>).
type tableXML struct {
	XMLName xml.Name      `xml:"table"`
	Name    string        `xml:"name,attr"`
	Rows    []tableRowXML `xml:"table-row"`
}

// tableRowXML represents a table row (<table:table-row>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"table-cell"`
}

// tableCellXML represents a table cell (<table:table-cell>).
type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// metaXML represents the structure of meta.xml
type metaXML struct {
	XMLName xml.Name     `xml:"document-meta"`
	Meta    *metaBodyXML `xml:"meta"`
}

// metaBodyXML holds the Dublin Core subset the converter cares about.
type metaBodyXML struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	InitialCreator string `xml:"initial-creator"`
}
