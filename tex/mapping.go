package tex

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping translates source style identifiers and block kinds to output
// markup templates. Every template carries a single %s placeholder for the
// block content.
type Mapping struct {
	// Styles maps a style identifier to its template. Lookup is by exact
	// identifier; a miss falls through to the kind-based templates.
	Styles map[string]string

	// Headings holds the sectioning templates by heading level. Levels
	// past the last entry reuse the last entry.
	Headings []string

	// Fallback is the plain-paragraph template used for unmapped styles.
	Fallback string

	// Character formatting wrappers, applied in fixed priority order:
	// bold outermost, then italic, then superscript.
	Bold        string
	Italic      string
	Superscript string

	// Footnote wraps resolved footnote content at its anchor.
	Footnote string

	// List environments and the item template.
	ListEnv        string
	OrderedListEnv string
	Item           string

	// Table environment and separators.
	TableEnv string
	CellSep  string
	RowSep   string
}

// DefaultMapping returns the mapping for the journal's document class.
func DefaultMapping() *Mapping {
	return &Mapping{
		Styles: map[string]string{
			"Heading1":     `\section{%s}`,
			"Heading2":     `\subsection{%s}`,
			"Heading3":     `\subsubsection{%s}`,
			"Heading4":     `\paragraph{%s}`,
			"Heading5":     `\subparagraph{%s}`,
			"Normal":       "%s",
			"Standard":     "%s",
			"Text_20_body": "%s",
			"FootnoteText": "%s",
			"EndnoteText":  "%s",
		},
		Headings: []string{
			`\section{%s}`,
			`\subsection{%s}`,
			`\subsubsection{%s}`,
			`\paragraph{%s}`,
			`\subparagraph{%s}`,
		},
		Fallback:       "%s",
		Bold:           `\textbf{%s}`,
		Italic:         `\emph{%s}`,
		Superscript:    `\textsuperscript{%s}`,
		Footnote:       `\footnote{%s}`,
		ListEnv:        "itemize",
		OrderedListEnv: "enumerate",
		Item:           `\item %s`,
		TableEnv:       "documentation",
		CellSep:        " & ",
		RowSep:         ` \\`,
	}
}

// HeadingTemplate returns the sectioning template for a 1-based level.
func (m *Mapping) HeadingTemplate(level int) string {
	if len(m.Headings) == 0 {
		return m.Fallback
	}
	if level < 1 {
		level = 1
	}
	if level > len(m.Headings) {
		level = len(m.Headings)
	}
	return m.Headings[level-1]
}

// Lookup returns the template for a style identifier and whether the style
// is mapped.
func (m *Mapping) Lookup(styleID string) (string, bool) {
	tmpl, ok := m.Styles[styleID]
	return tmpl, ok
}

// mappingFile is the on-disk shape of a custom mapping file.
type mappingFile struct {
	Styles   map[string]string `yaml:"styles"`
	Headings []string          `yaml:"headings"`
	Fallback string            `yaml:"fallback"`
	TableEnv string            `yaml:"table_env"`
	ListEnv  string            `yaml:"list_env"`
}

// LoadMappings reads a YAML mapping file and merges it over the defaults.
// Only the keys present in the file are overridden.
func LoadMappings(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing mapping file %s: %w", path, err)
	}

	m := DefaultMapping()
	for id, tmpl := range mf.Styles {
		if strings.Count(tmpl, "%s") != 1 {
			return nil, fmt.Errorf("mapping for style %q must contain exactly one %%s placeholder", id)
		}
		m.Styles[id] = tmpl
	}
	if len(mf.Headings) > 0 {
		m.Headings = mf.Headings
	}
	if mf.Fallback != "" {
		m.Fallback = mf.Fallback
	}
	if mf.TableEnv != "" {
		m.TableEnv = mf.TableEnv
	}
	if mf.ListEnv != "" {
		m.ListEnv = mf.ListEnv
	}

	return m, nil
}
