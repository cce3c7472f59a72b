package docx

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the fully resolved classification for a style.
// The converter cares about four facets of a style: whether it marks a
// section (and at which level), whether it marks a list item (and at which
// level), and whether it carries bold or italic formatting.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Known reports whether a definition for the style was found in
	// word/styles.xml.
	Known bool

	// Section info
	IsSection    bool
	SectionLevel int // 1-based heading level (1-9), 0 if not a section

	// List info
	IsList    bool
	ListLevel int // 0-based nesting level

	// Character formatting declared by the style
	Bold   bool
	Italic bool
}

// StyleResolver resolves style classifications with basedOn inheritance.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
	}

	return sr
}

// Resolve returns the fully resolved classification for the given style ID.
// An unknown style resolves to a plain style with Known == false.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		return &ResolvedStyle{}
	}

	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}

	styleDef, ok := sr.styles[styleID]
	if !ok {
		// No definition. Built-in heading IDs still classify as sections.
		resolved.IsSection, resolved.SectionLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Known = true
	resolved.Name = styleDef.Name.Val
	resolved.Type = styleDef.Type

	// Apply properties from base to derived.
	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			sr.applyStyleDef(resolved, def)
		}
	}

	resolved.IsSection, resolved.SectionLevel = sr.detectSection(styleDef, resolved)
	if resolved.IsSection {
		// A style is a section or a list item, never both.
		resolved.IsList = false
	}

	sr.resolved[styleID] = resolved
	return resolved
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		if def, ok := sr.styles[current]; ok {
			current = def.BasedOn.Val
		} else {
			break
		}
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	if def.RPr.Bold.set() {
		resolved.Bold = true
	}
	if def.RPr.Italic.set() {
		resolved.Italic = true
	}
	if def.PPr.NumPr.ILvl.XMLName.Local != "" {
		resolved.IsList = true
		resolved.ListLevel = parseLevel(def.PPr.NumPr.ILvl.Val)
	}
	if def.PPr.OutlineLvl.XMLName.Local != "" {
		if level := parseOutlineLevel(def.PPr.OutlineLvl.Val); level >= 0 {
			resolved.IsSection = true
			resolved.SectionLevel = level + 1 // OutlineLvl is 0-based
		}
	}
}

// detectSection determines if a style represents a section heading.
func (sr *StyleResolver) detectSection(def *styleDefXML, resolved *ResolvedStyle) (bool, int) {
	if resolved.IsSection {
		return true, resolved.SectionLevel
	}

	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	// Check style name for heading patterns.
	name := strings.ToLower(def.Name.Val)
	if strings.HasPrefix(name, "heading") {
		for i := 1; i <= 9; i++ {
			if strings.Contains(name, strconv.Itoa(i)) {
				return true, i
			}
		}
		return true, 1 // Default to level 1
	}

	return false, 0
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)

	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1, "subtitle": 2,
	}

	if level, ok := headingMap[id]; ok {
		return true, level
	}

	return false, 0
}

// parseOutlineLevel parses an outline level string to an integer.
// Returns -1 for values outside the valid 0-8 range.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}

// parseLevel parses a list level, defaulting to 0.
func parseLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 {
		return 0
	}
	return level
}
