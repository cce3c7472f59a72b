package doc

import "strings"

// BlockKind represents the kind of a paragraph-level unit.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindParagraph
	KindHeading
	KindListItem
	KindTable
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindHeading:
		return "Heading"
	case KindListItem:
		return "ListItem"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block represents a paragraph-level unit of a document.
type Block struct {
	Kind    BlockKind
	StyleID string // source style identifier, e.g. "Heading1", "Normal"

	// Level is the heading level (1-5) for KindHeading, or the 0-based
	// nesting level for KindListItem. Zero otherwise.
	Level int

	// Ordered marks a KindListItem as part of a numbered list.
	Ordered bool

	Runs []Run

	// Table content, set only for KindTable.
	Table *Table

	// Direct paragraph formatting that applies to every run in the block.
	Bold   bool
	Italic bool
}

// Text returns the concatenated run text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the block carries no text, no footnote anchors,
// and no table content.
func (b Block) IsEmpty() bool {
	if b.Table != nil {
		return false
	}
	for _, r := range b.Runs {
		if strings.TrimSpace(r.Text) != "" || r.FootnoteID != "" {
			return false
		}
	}
	return true
}

// Run represents a span of characters sharing formatting within a Block.
type Run struct {
	Text        string
	Bold        bool
	Italic      bool
	Superscript bool

	// FootnoteID is the identifier of the footnote this run anchors,
	// or "" if the run anchors none.
	FootnoteID string
}

// Table represents a table block: rows of cells, each cell an ordered
// sequence of blocks.
type Table struct {
	Rows []TableRow
}

// TableRow represents a single table row.
type TableRow struct {
	Cells []TableCell
}

// TableCell represents a single table cell.
type TableCell struct {
	Blocks []Block
}

// Text returns the concatenated text of all blocks in the cell, with
// blocks joined by newlines.
func (c TableCell) Text() string {
	parts := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if t := b.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
