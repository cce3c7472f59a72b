package tex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkale/galley/doc"
)

// Warning describes a non-fatal problem encountered while emitting markup.
type Warning struct {
	StyleID string // style identifier involved, if any
	Message string
}

func (w Warning) String() string {
	if w.StyleID != "" {
		return fmt.Sprintf("%s (style %q)", w.Message, w.StyleID)
	}
	return w.Message
}

// Stats counts the structures recognized during emission.
type Stats struct {
	Sections  int
	Bold      int
	Italic    int
	ListItems int
	Tables    int
	TableRows int
	Footnotes int
}

// Emitter serializes a doc.Document to markup through a Mapping. An Emitter
// is single-use: create one per document.
type Emitter struct {
	mapping  *Mapping
	warnings []Warning
	stats    Stats
	warned   map[string]bool
}

// NewEmitter creates an emitter using the given mapping. A nil mapping uses
// the defaults.
func NewEmitter(m *Mapping) *Emitter {
	if m == nil {
		m = DefaultMapping()
	}
	return &Emitter{
		mapping: m,
		warned:  make(map[string]bool),
	}
}

// Warnings returns the warnings collected during emission.
func (e *Emitter) Warnings() []Warning {
	return e.warnings
}

// Stats returns the counters collected during emission.
func (e *Emitter) Stats() Stats {
	return e.stats
}

// Emit serializes the document's blocks in order. Every input block yields
// exactly one markup block; consecutive list items additionally open and
// close their list environment.
func (e *Emitter) Emit(d *doc.Document) string {
	var sb strings.Builder
	lists := newListStack(e.mapping)

	for _, b := range d.Blocks {
		if b.Kind != doc.KindListItem {
			sb.WriteString(lists.closeAll())
		}

		switch b.Kind {
		case doc.KindHeading:
			e.stats.Sections++
			sb.WriteString(e.renderHeading(b, d))
			sb.WriteString("\n\n")

		case doc.KindListItem:
			e.stats.ListItems++
			sb.WriteString(lists.adjust(b.Level, b.Ordered))
			sb.WriteString(lists.indent())
			sb.WriteString(fmt.Sprintf(e.mapping.Item, e.renderContent(b, d)))
			sb.WriteString("\n")

		case doc.KindTable:
			e.stats.Tables++
			sb.WriteString(e.renderTable(b.Table, d))
			sb.WriteString("\n\n")

		default:
			sb.WriteString(e.renderParagraph(b, d))
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString(lists.closeAll())

	return sb.String()
}

// renderHeading renders a heading block. The style mapping wins over the
// level-derived template; paragraph-level bold is redundant inside a
// sectioning command and is dropped by the loader.
func (e *Emitter) renderHeading(b doc.Block, d *doc.Document) string {
	tmpl, ok := e.mapping.Lookup(b.StyleID)
	if !ok {
		tmpl = e.mapping.HeadingTemplate(b.Level)
	}
	return fmt.Sprintf(tmpl, e.renderContent(b, d))
}

// renderParagraph renders a plain paragraph block. Unknown styles fall back
// to the plain-paragraph template and are recorded as warnings, once per
// distinct style.
func (e *Emitter) renderParagraph(b doc.Block, d *doc.Document) string {
	tmpl := e.mapping.Fallback
	if b.StyleID == "" {
		// Unstyled paragraphs are plain by definition.
	} else if t, ok := e.mapping.Lookup(b.StyleID); ok {
		tmpl = t
	} else if !e.warned[b.StyleID] {
		e.warned[b.StyleID] = true
		e.warnings = append(e.warnings, Warning{
			StyleID: b.StyleID,
			Message: "unmapped style, using plain paragraph",
		})
	}
	return fmt.Sprintf(tmpl, e.renderContent(b, d))
}

// renderTable renders a table block as the journal's table environment,
// cells separated by the cell separator and rows closed by the row
// separator.
func (e *Emitter) renderTable(t *doc.Table, d *doc.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\\begin{%s}\n", e.mapping.TableEnv))

	for _, row := range t.Rows {
		e.stats.TableRows++
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			parts := make([]string, 0, len(cell.Blocks))
			for _, cb := range cell.Blocks {
				parts = append(parts, e.renderContent(cb, d))
			}
			cells[i] = strings.Join(parts, "\n\n")
		}
		sb.WriteString(strings.Join(cells, e.mapping.CellSep))
		sb.WriteString(e.mapping.RowSep)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\\end{%s}", e.mapping.TableEnv))
	return sb.String()
}

// renderContent renders the runs of a block and applies the block-level
// character formatting around the joined result.
func (e *Emitter) renderContent(b doc.Block, d *doc.Document) string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(e.renderRun(r, d))
	}
	content := sb.String()

	if b.Kind != doc.KindHeading {
		if b.Italic {
			e.stats.Italic++
			content = fmt.Sprintf(e.mapping.Italic, content)
		}
		if b.Bold {
			e.stats.Bold++
			content = fmt.Sprintf(e.mapping.Bold, content)
		}
	}

	return content
}

// renderRun renders a single run: escaped text, URL commands, then the
// formatting wrappers in fixed priority order (superscript innermost, bold
// outermost), then any anchored footnote.
func (e *Emitter) renderRun(r doc.Run, d *doc.Document) string {
	text := wrapURLs(Escape(r.Text))

	if text != "" {
		if r.Superscript {
			text = fmt.Sprintf(e.mapping.Superscript, text)
		}
		if r.Italic {
			e.stats.Italic++
			text = fmt.Sprintf(e.mapping.Italic, text)
		}
		if r.Bold {
			e.stats.Bold++
			text = fmt.Sprintf(e.mapping.Bold, text)
		}
	}

	if r.FootnoteID != "" {
		text += e.renderFootnote(r.FootnoteID, d)
	}

	return text
}

// renderFootnote expands a footnote anchor to the footnote command wrapping
// the note's own content. A dangling anchor becomes a warning and renders
// to nothing.
func (e *Emitter) renderFootnote(id string, d *doc.Document) string {
	blocks, ok := d.Footnote(id)
	if !ok {
		e.warnings = append(e.warnings, Warning{
			Message: fmt.Sprintf("footnote %s referenced but not defined", id),
		})
		return ""
	}

	e.stats.Footnotes++

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, e.renderContent(b, d))
	}
	return fmt.Sprintf(e.mapping.Footnote, strings.Join(parts, " "))
}

// Escape escapes markup-significant characters in literal text content.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '$':
			sb.WriteString(`\$`)
		case '#':
			sb.WriteString(`\#`)
		case '&':
			sb.WriteString(`\&`)
		case '%':
			sb.WriteString(`\%`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// urlRE matches bare URLs, optionally wrapped in angle brackets.
var urlRE = regexp.MustCompile(`<?((?:www\.[-a-zA-Z0-9]+\.[^\s>]+/|https?://)[^\s>]+)>?`)

// wrapURLs wraps bare URLs in the \url command.
func wrapURLs(s string) string {
	return urlRE.ReplaceAllString(s, `\url{$1}`)
}

// listStack tracks open list environments during emission.
type listStack struct {
	mapping *Mapping
	envs    []string
}

func newListStack(m *Mapping) *listStack {
	return &listStack{mapping: m}
}

// adjust opens or closes environments so the stack depth matches the item's
// nesting level, and returns the markup doing so.
func (ls *listStack) adjust(level int, ordered bool) string {
	depth := level + 1
	var sb strings.Builder

	for len(ls.envs) > depth {
		sb.WriteString(ls.closeOne())
	}
	for len(ls.envs) < depth {
		env := ls.mapping.ListEnv
		if ordered {
			env = ls.mapping.OrderedListEnv
		}
		sb.WriteString(strings.Repeat("  ", len(ls.envs)))
		sb.WriteString(fmt.Sprintf("\\begin{%s}\n", env))
		ls.envs = append(ls.envs, env)
	}

	return sb.String()
}

// indent returns the indentation for an item at the current depth.
func (ls *listStack) indent() string {
	if len(ls.envs) == 0 {
		return ""
	}
	return strings.Repeat("  ", len(ls.envs)-1)
}

// closeOne closes the innermost open environment.
func (ls *listStack) closeOne() string {
	env := ls.envs[len(ls.envs)-1]
	ls.envs = ls.envs[:len(ls.envs)-1]
	return strings.Repeat("  ", len(ls.envs)) + fmt.Sprintf("\\end{%s}\n", env)
}

// closeAll closes every open environment and appends the block separator
// when anything was closed.
func (ls *listStack) closeAll() string {
	if len(ls.envs) == 0 {
		return ""
	}
	var sb strings.Builder
	for len(ls.envs) > 0 {
		sb.WriteString(ls.closeOne())
	}
	sb.WriteString("\n")
	return sb.String()
}
