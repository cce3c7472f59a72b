package odt

import "encoding/xml"

// stylesXML represents the structure of styles.xml
type stylesXML struct {
	XMLName    xml.Name         `xml:"document-styles"`
	Styles     *officeStylesXML `xml:"styles"`
	AutoStyles *officeStylesXML `xml:"automatic-styles"`
}

// officeStylesXML holds style and list-style definitions.
type officeStylesXML struct {
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// contentStylesXML represents automatic styles in content.xml
type contentStylesXML struct {
	XMLName    xml.Name       `xml:"automatic-styles"`
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// styleDefXML represents a style definition (<style:style>).
type styleDefXML struct {
	Name                string        `xml:"name,attr"`
	Family              string        `xml:"family,attr"` // paragraph, text, table, ...
	ParentStyleName     string        `xml:"parent-style-name,attr"`
	DisplayName         string        `xml:"display-name,attr"`
	DefaultOutlineLevel string        `xml:"default-outline-level,attr"`
	TextProps           *textPropsXML `xml:"text-properties"`
}

// textPropsXML represents text properties (<style:text-properties>).
type textPropsXML struct {
	FontWeight   string `xml:"font-weight,attr"`   // normal, bold
	FontStyle    string `xml:"font-style,attr"`    // normal, italic
	TextPosition string `xml:"text-position,attr"` // e.g. "super 58%"
}

// listStyleXML represents a list style (<text:list-style>).
type listStyleXML struct {
	Name         string         `xml:"name,attr"`
	BulletLevels []listLevelXML `xml:"list-level-style-bullet"`
	NumberLevels []listLevelXML `xml:"list-level-style-number"`
}

// listLevelXML represents one level of a list style. ODF levels are 1-based.
type listLevelXML struct {
	Level string `xml:"level,attr"`
}
