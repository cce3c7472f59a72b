package tex

import (
	"regexp"
	"strings"
)

// Footnote extraction pulls footnote bodies back out of an emitted .tex
// source so editors can proofread them as plain text.

var (
	spanCommandRE = regexp.MustCompile(`\\(zhs|emph|textbf|textsuperscript)\{(.*?)\}`)
	urlCommandRE  = regexp.MustCompile(`\\url\{(.*?)\}`)
	tieRE         = regexp.MustCompile(`(\\,|~)`)

	footnoteBodyRE = regexp.MustCompile(`\\footnote\{([^}]+?)\}`)
)

// unmarkupReplacer restores Unicode typography from TeX spellings. Longer
// spellings come first so "---" is not read as "--" plus "-".
var unmarkupReplacer = strings.NewReplacer(
	"---", "—",
	"--", "–",
	"''", "”",
	"``", "“",
	",,", "„",
	"'", "’",
	"`", "‘",
)

// ExtractFootnotes returns the body of every footnote command in src, in
// document order, with markup stripped and Unicode typography restored.
func ExtractFootnotes(src string) []string {
	src = stripMarkup(src)

	matches := footnoteBodyRE.FindAllStringSubmatch(src, -1)
	notes := make([]string, 0, len(matches))
	for _, m := range matches {
		notes = append(notes, m[1])
	}
	return notes
}

// FormatFootnotes serializes extracted footnotes one per blank-line
// separated block.
func FormatFootnotes(notes []string) string {
	var sb strings.Builder
	for _, n := range notes {
		sb.WriteString(n)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// stripMarkup removes formatting commands and restores plain typography.
// Span commands can nest, so unwrapping repeats until none remain.
func stripMarkup(s string) string {
	for spanCommandRE.MatchString(s) {
		next := spanCommandRE.ReplaceAllString(s, "${2}")
		if next == s {
			break
		}
		s = next
	}

	s = urlCommandRE.ReplaceAllString(s, "<${1}>")
	s = tieRE.ReplaceAllString(s, " ")
	s = unmarkupReplacer.Replace(s)

	return s
}
