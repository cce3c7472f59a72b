package galley

import "github.com/pkale/galley/tex"

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Style mapping; nil means tex.DefaultMapping.
	mapping *tex.Mapping

	// Path of a YAML mapping file to merge over the defaults. Loaded
	// lazily by the terminal operation.
	mappingPath string

	// Processing options
	typography bool // apply the typography pass
	cleanup    bool // apply the cleanup pass
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		mapping:    nil,
		typography: true,
		cleanup:    true,
	}
}

// clone creates a copy of ConvertOptions. The mapping pointer is shared;
// mappings are not mutated during conversion.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		mapping:     o.mapping,
		mappingPath: o.mappingPath,
		typography:  o.typography,
		cleanup:     o.cleanup,
	}
}
