// Package galley converts word-processor manuscripts into the semantic
// LaTeX markup consumed by an academic journal's document class.
//
// Basic usage:
//
//	latex, warnings, err := galley.Open("article.docx").ToLaTeX()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", galley.FormatWarnings(warnings))
//	}
//
// With options:
//
//	latex, _, err := galley.Open("article.docx").
//	    MappingFile("house-styles.yaml").
//	    NoTypography().
//	    ToLaTeX()
//
// For advanced use cases, the lower-level docx, odt, and tex packages are
// also available.
package galley

import (
	"strings"

	"github.com/pkale/galley/tex"
)

// Warning describes a non-fatal problem encountered during conversion.
type Warning = tex.Warning

// Stats counts the structures recognized during conversion.
type Stats = tex.Stats

// Open opens a DOCX or ODT file and returns a Converter for fluent
// configuration. The reader is chosen by file extension; no work happens
// until a terminal operation like ToLaTeX runs.
//
// Example:
//
//	latex, warnings, err := galley.Open("article.docx").ToLaTeX()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLaTeX wraps a call to ToLaTeX and panics if the error is non-nil,
// discarding warnings. It is intended for scripts and tests.
//
// Example:
//
//	latex := galley.MustLaTeX(galley.Open("article.docx").ToLaTeX())
func MustLaTeX(val string, _ []Warning, err error) string {
	if err != nil {
		panic(err)
	}
	return val
}
