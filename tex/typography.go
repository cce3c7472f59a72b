package tex

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// The typography pass polishes emitted markup to the journal's house
// conventions: TeX quote ligatures, en/em dashes, thin spaces in
// abbreviations, non-breaking spaces in legal citations, and CJK wrapping.

var (
	numberRunRE  = regexp.MustCompile(`[\d-]+`)
	digitDashRE  = regexp.MustCompile(`(\d)-(\d)`)
	spacedDashRE = regexp.MustCompile(`[ \t](-)[ \t]`)

	abbrevThreeRE = regexp.MustCompile(`\b([a-zA-Z])\.([a-zA-Z])\.([a-zA-Z])\.`)
	abbrevTwoRE   = regexp.MustCompile(`\b([a-zA-Z])\.([a-zA-Z]{1,2})\.`)
	percentRE     = regexp.MustCompile(`(\d)\\%`)

	citation  = `(§§?|Artt?\.|Abs\.|Bd\.|Vol\.|S\.|pp?\.|Nr\.|No\.|Fn\.|Rn\.|Sec\.|sec\.|lit\.)`
	citeffRE  = regexp.MustCompile(citation + `\s(\d+)\s(ff?\.)`)
	citeNumRE = regexp.MustCompile(citation + `\s(\d+)`)

	tildeNewlineRE = regexp.MustCompile(`~\n`)
	manyNewlinesRE = regexp.MustCompile(`\n{3,}`)
	tildeSpaceRE   = regexp.MustCompile(`~[ \t\f]`)
	spaceTildeRE   = regexp.MustCompile(`[ \t\f]~`)
)

// quoteReplacer maps Unicode typography to its TeX spelling. Adjacent
// double/single quote collisions get an empty group so TeX does not read
// them as a triple ligature.
var quoteReplacer = strings.NewReplacer(
	"“‘", "``{}`",
	"‘“", "`{}``",
	"”’", "''{}'",
	"’”", "'{}''",
	"„‚", ",,{},",
	"‚„", ",{},,",
	"“", "``",
	"”", "''",
	"„", ",,",
	"‘", "`",
	"’", "'",
	"‚", ",",
	"…", `\ldots{}`,
	"...", `\ldots{}`,
	"–", "--",
	"—", "---",
	"!`", "!{}`",
	"?`", "?{}`",
	" ", "~",
)

// Typography applies the journal's typographic conventions to emitted
// markup. It expects escaped markup, i.e. the output of the emitter.
func Typography(s string) string {
	// Number ranges: a single hyphen between digits becomes an en dash.
	// Runs with several hyphens (dates, ISBNs) are left alone.
	s = numberRunRE.ReplaceAllStringFunc(s, func(m string) string {
		if strings.Count(m, "-") != 1 {
			return m
		}
		return digitDashRE.ReplaceAllString(m, "$1--$2")
	})
	s = spacedDashRE.ReplaceAllString(s, " -- ")

	// Thin spaces in letter abbreviations and before escaped percent.
	s = abbrevThreeRE.ReplaceAllString(s, `$1.\,$2.\,$3.`)
	s = abbrevTwoRE.ReplaceAllString(s, `$1.\,$2.`)
	s = percentRE.ReplaceAllString(s, `$1\,\%`)

	// Non-breaking spaces in legal citations.
	s = citeffRE.ReplaceAllString(s, "$1~$2~$3")
	s = citeNumRE.ReplaceAllString(s, "$1~$2")

	// Unicode typography to TeX spellings.
	s = quoteReplacer.Replace(s)

	// Tidy spacing around ties and collapse runs of blank lines.
	s = tildeNewlineRE.ReplaceAllString(s, "\n")
	s = manyNewlinesRE.ReplaceAllString(s, "\n\n")
	s = tildeSpaceRE.ReplaceAllString(s, "~")
	s = spaceTildeRE.ReplaceAllString(s, "~")

	// CJK passages go through the class's CJK command.
	s = wrapCJK(s)

	return s
}

// isCJK reports whether a rune belongs to a CJK passage. Classification is
// by East Asian width, with Han as an explicit extra so narrow-width
// compatibility ideographs are not missed.
func isCJK(r rune) bool {
	if unicode.Is(unicode.Han, r) {
		return true
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// wrapCJK wraps maximal runs of CJK characters in the \zhs command.
func wrapCJK(s string) string {
	if !strings.ContainsFunc(s, isCJK) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 16)

	inCJK := false
	for _, r := range s {
		switch {
		case isCJK(r) && !inCJK:
			sb.WriteString(`\zhs{`)
			inCJK = true
		case !isCJK(r) && inCJK:
			sb.WriteString("}")
			inCJK = false
		}
		sb.WriteRune(r)
	}
	if inCJK {
		sb.WriteString("}")
	}

	return sb.String()
}
