package tex

import "regexp"

// The cleanup pass tidies the raw emitter output: style-level and run-level
// formatting can stack the same command, footnote anchors can end up inside
// a formatting span, and word processors love trailing spaces inside
// formatted text.

var (
	nestedEmphRE = regexp.MustCompile(`\\emph\{\\emph\{(.*?)\}(\s*)\}`)
	nestedBoldRE = regexp.MustCompile(`\\textbf\{\\textbf\{(.*?)\}(\s*)\}`)

	wrappedFootnoteRE = regexp.MustCompile(`\\(emph|textbf)\{\\footnote\{(.*?)\}(\s*)\}`)

	adjacentEmphRE = regexp.MustCompile(`\\emph\{(.*?)\}([ \t\f]*)\\emph\{(.*?)\}`)
	adjacentBoldRE = regexp.MustCompile(`\\textbf\{(.*?)\}([ \t\f]*)\\textbf\{(.*?)\}`)

	emptySpanRE    = regexp.MustCompile(`\\(emph|textbf)\{\s*\}`)
	trailingSpanRE = regexp.MustCompile(`\\(emph|textbf)\{(.*?)[ \t\f]+\}`)
	leadingSpanRE  = regexp.MustCompile(`\\(emph|textbf)\{[ \t\f]+(.*?)\}`)

	trailingFootnoteRE = regexp.MustCompile(`\\footnote\{(.*?)\s+\}`)
	leadingFootnoteRE  = regexp.MustCompile(`\\footnote\{\s+(.*?)\}`)
)

// Cleanup tidies nested, adjacent, and empty formatting commands in emitted
// markup.
func Cleanup(s string) string {
	// Collapse doubled formatting.
	s = nestedEmphRE.ReplaceAllString(s, `\emph{${1}${2}}`)
	s = nestedBoldRE.ReplaceAllString(s, `\textbf{${1}${2}}`)

	// A footnote carries its own formatting; hoist it out of any span.
	s = wrappedFootnoteRE.ReplaceAllString(s, `\footnote{${2}}${3}`)

	// Join adjacent spans of the same command.
	s = reduce(s, adjacentEmphRE, `\emph{${1}${2}${3}}`)
	s = reduce(s, adjacentBoldRE, `\textbf{${1}${2}${3}}`)

	// Drop spans with nothing in them, then move stray spaces outside.
	s = emptySpanRE.ReplaceAllString(s, "")
	s = trailingSpanRE.ReplaceAllString(s, `\${1}{${2}} `)
	s = leadingSpanRE.ReplaceAllString(s, ` \${1}{${2}}`)

	// Footnote bodies never start or end with whitespace.
	s = trailingFootnoteRE.ReplaceAllString(s, `\footnote{${1}}`)
	s = leadingFootnoteRE.ReplaceAllString(s, `\footnote{${1}}`)

	return s
}

// reduce applies the replacement until the pattern stops matching. Joining
// two adjacent spans can create a new adjacency, so one pass is not enough.
func reduce(s string, re *regexp.Regexp, repl string) string {
	for re.MatchString(s) {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
	return s
}
