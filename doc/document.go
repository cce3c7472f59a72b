package doc

// Document represents a complete loaded document with extracted structure.
type Document struct {
	Metadata Metadata
	Blocks   []Block

	// Footnotes maps a footnote identifier to its content blocks.
	Footnotes map[string][]Block
}

// Metadata contains document-level information.
type Metadata struct {
	Title   string
	Author  string
	Subject string
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{
		Blocks:    make([]Block, 0),
		Footnotes: make(map[string][]Block),
	}
}

// AddBlock appends a block to the document body.
func (d *Document) AddBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// BlockCount returns the number of body blocks.
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// Footnote returns the content blocks for the given footnote identifier.
func (d *Document) Footnote(id string) ([]Block, bool) {
	blocks, ok := d.Footnotes[id]
	return blocks, ok
}

// StyleIDs returns the style identifier of every body block, in order.
func (d *Document) StyleIDs() []string {
	ids := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		ids[i] = b.StyleID
	}
	return ids
}

// Headings returns all heading blocks in document order.
func (d *Document) Headings() []Block {
	var headings []Block
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			headings = append(headings, b)
		}
	}
	return headings
}
