package docx

import "github.com/pkale/galley/doc"

// TableParser handles parsing of DOCX tables into doc.Table values.
type TableParser struct {
	reader *Reader
}

// NewTableParser creates a new table parser bound to a reader.
func NewTableParser(r *Reader) *TableParser {
	return &TableParser{reader: r}
}

// ParseTable parses a table XML element. Cell paragraphs go through the
// same classification as body paragraphs, so footnote anchors and character
// formatting inside cells survive.
func (tp *TableParser) ParseTable(tbl tableXML) *doc.Table {
	table := &doc.Table{}

	for _, row := range tbl.Rows {
		parsedRow := doc.TableRow{}
		for _, cell := range row.Cells {
			parsedCell := doc.TableCell{}
			for _, p := range cell.Paragraphs {
				block := tp.reader.processParagraph(p, false)
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
