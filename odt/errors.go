package odt

import "fmt"

// FileFormatError reports that an input file is not a readable ODT package.
type FileFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FileFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

// EncodingError reports text content that cannot be carried into the output
// markup, together with the location of the offending block.
type EncodingError struct {
	Block    int    // 0-based index of the offending body block, -1 for footnote content
	Offset   int    // byte offset of the offending sequence within the block text
	Footnote string // footnote identifier when the text is note content
}

func (e *EncodingError) Error() string {
	if e.Footnote != "" {
		return fmt.Sprintf("invalid character data in footnote %s at offset %d", e.Footnote, e.Offset)
	}
	return fmt.Sprintf("invalid character data in block %d at offset %d", e.Block, e.Offset)
}
