package galley

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pkale/galley/doc"
	"github.com/pkale/galley/docx"
	"github.com/pkale/galley/format"
	"github.com/pkale/galley/odt"
	"github.com/pkale/galley/tex"
)

// Converter provides a fluent interface for converting a manuscript to
// markup. Each configuration method returns a new Converter instance,
// making chains safe to reuse and fork.
type Converter struct {
	// Source
	filename string

	// Configuration
	options ConvertOptions
	logger  *logrus.Logger

	// Accumulated error (fail-fast)
	err error

	// Stats from the last terminal operation
	stats Stats
}

// clone creates a copy of the Converter with a copy of its options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		options:  c.options.clone(),
		logger:   c.logger,
		err:      c.err,
	}
}

// Mapping sets a custom style mapping.
func (c *Converter) Mapping(m *tex.Mapping) *Converter {
	nc := c.clone()
	nc.options.mapping = m
	return nc
}

// MappingFile merges a YAML mapping file over the default mapping. The
// file is loaded when a terminal operation runs.
func (c *Converter) MappingFile(path string) *Converter {
	nc := c.clone()
	nc.options.mappingPath = path
	return nc
}

// NoTypography disables the typography pass, leaving quotes, dashes, and
// spacing exactly as they appear in the source document.
func (c *Converter) NoTypography() *Converter {
	nc := c.clone()
	nc.options.typography = false
	return nc
}

// NoCleanup disables the cleanup pass that merges nested and adjacent
// formatting commands. Mostly useful for debugging emitter output.
func (c *Converter) NoCleanup() *Converter {
	nc := c.clone()
	nc.options.cleanup = false
	return nc
}

// WithLogger attaches a logger. Warnings are logged at warn level as they
// are collected; recognition counts are logged at debug level.
func (c *Converter) WithLogger(logger *logrus.Logger) *Converter {
	nc := c.clone()
	nc.logger = logger
	return nc
}

// Stats returns the recognition counters from the last terminal operation.
func (c *Converter) Stats() Stats {
	return c.stats
}

// ToLaTeX converts the document and returns the markup, any warnings
// collected, and an error if conversion failed. This is a terminal
// operation.
func (c *Converter) ToLaTeX() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if c.filename == "" {
		return "", nil, fmt.Errorf("no filename specified")
	}

	mapping, err := c.resolveMapping()
	if err != nil {
		return "", nil, err
	}

	d, err := c.loadDocument()
	if err != nil {
		return "", nil, err
	}

	emitter := tex.NewEmitter(mapping)
	out := emitter.Emit(d)

	if c.options.cleanup {
		out = tex.Cleanup(out)
	}
	if c.options.typography {
		out = tex.Typography(out)
	}

	warnings := emitter.Warnings()
	c.stats = emitter.Stats()

	if c.logger != nil {
		for _, w := range warnings {
			c.logger.WithField("style", w.StyleID).Warn(w.Message)
		}
		c.logger.WithFields(logrus.Fields{
			"blocks":    d.BlockCount(),
			"sections":  c.stats.Sections,
			"footnotes": c.stats.Footnotes,
			"tables":    c.stats.Tables,
		}).Debug("conversion finished")
	}

	return out, warnings, nil
}

// ConvertFile converts the document and writes the markup to outPath. The
// output file is written only after the whole conversion succeeds, so a
// failed run leaves no partial output behind. This is a terminal operation.
func (c *Converter) ConvertFile(outPath string) ([]Warning, error) {
	out, warnings, err := c.ToLaTeX()
	if err != nil {
		return warnings, err
	}

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return warnings, fmt.Errorf("writing %s: %w", outPath, err)
	}

	return warnings, nil
}

// loadDocument opens the manuscript with the reader matching its format
// and extracts the intermediate document. When the extension is not
// recognized, the file content decides; a file that defeats both checks
// still goes through the docx reader, whose package validation produces
// the useful error.
func (c *Converter) loadDocument() (*doc.Document, error) {
	f := format.Detect(c.filename)
	if f == format.Unknown {
		if detected, err := format.DetectFile(c.filename); err == nil {
			f = detected
		}
	}

	switch f {
	case format.ODT:
		r, err := odt.Open(c.filename)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.Document()
	case format.DOCX, format.Unknown:
		r, err := docx.Open(c.filename)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.Document()
	default:
		return nil, &docx.FileFormatError{Path: c.filename, Reason: "input is not a word-processor document"}
	}
}

// resolveMapping returns the effective style mapping for this conversion.
func (c *Converter) resolveMapping() (*tex.Mapping, error) {
	if c.options.mappingPath != "" {
		return tex.LoadMappings(c.options.mappingPath)
	}
	if c.options.mapping != nil {
		return c.options.mapping, nil
	}
	return tex.DefaultMapping(), nil
}
