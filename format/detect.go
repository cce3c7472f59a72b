// Package format provides input format detection for the galley converter.
package format

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// TeX indicates a LaTeX source file.
	TeX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case TeX:
		return "TeX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case TeX:
		return ".tex"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".tex":
		return TeX
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// Both DOCX and ODT files are ZIP archives, so this only confirms the
// container; use DetectFromReader to distinguish the payload.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic: PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return DOCX
	}

	return Unknown
}

// DetectFromReader inspects the content to determine format. This is more
// reliable than extension-based detection: it verifies that a ZIP container
// actually holds a WordprocessingML or OpenDocument package.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	return Unknown, nil
}

// DetectFile inspects a file on disk to determine its format.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	return DetectFromReader(f, info.Size())
}

// detectZIPFormat inspects a ZIP archive for WordprocessingML or
// OpenDocument markers.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	hasContentXML := false
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
		if f.Name == "content.xml" {
			hasContentXML = true
		}
	}

	if hasContentXML {
		return ODT, nil
	}

	return Unknown, nil
}
