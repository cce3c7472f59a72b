package odt

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the resolved classification for a style: whether
// it marks a section and at which level, and the character formatting it
// declares.
type ResolvedStyle struct {
	// Identity
	Name   string
	Family string

	// Known reports whether a definition for the style was found.
	Known bool

	// Section info
	IsSection    bool
	SectionLevel int // 1-based heading level, 0 if not a section

	// Character formatting declared by the style
	Bold        bool
	Italic      bool
	Superscript bool
}

// StyleResolver resolves style classifications with parent-style
// inheritance. Automatic styles from content.xml override named styles
// from styles.xml under the same name.
type StyleResolver struct {
	styles     map[string]*styleDefXML
	listStyles map[string]*listStyleXML
	automatic  map[string]bool
	resolved   map[string]*ResolvedStyle
}

// NewStyleResolver creates a resolver from content.xml automatic styles and
// the styles.xml definitions. Either may be nil.
func NewStyleResolver(contentStyles *contentStylesXML, docStyles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:     make(map[string]*styleDefXML),
		listStyles: make(map[string]*listStyleXML),
		automatic:  make(map[string]bool),
		resolved:   make(map[string]*ResolvedStyle),
	}

	register := func(set *officeStylesXML, automatic bool) {
		if set == nil {
			return
		}
		for i := range set.Styles {
			style := &set.Styles[i]
			sr.styles[style.Name] = style
			sr.automatic[style.Name] = automatic
		}
		for i := range set.ListStyles {
			ls := &set.ListStyles[i]
			sr.listStyles[ls.Name] = ls
		}
	}

	if docStyles != nil {
		register(docStyles.Styles, false)
		register(docStyles.AutoStyles, true)
	}
	if contentStyles != nil {
		register(&officeStylesXML{Styles: contentStyles.Styles, ListStyles: contentStyles.ListStyles}, true)
	}

	return sr
}

// Resolve returns the fully resolved classification for the given style
// name. An unknown style resolves to a plain style with Known == false.
func (sr *StyleResolver) Resolve(styleName string) *ResolvedStyle {
	if styleName == "" {
		return &ResolvedStyle{}
	}

	if resolved, ok := sr.resolved[styleName]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{Name: styleName}

	styleDef, ok := sr.styles[styleName]
	if !ok {
		resolved.IsSection, resolved.SectionLevel = detectBuiltInHeading(styleName)
		sr.resolved[styleName] = resolved
		return resolved
	}

	resolved.Known = true
	resolved.Family = styleDef.Family

	// Apply properties from base to derived.
	for _, name := range sr.buildInheritanceChain(styleName) {
		if def, ok := sr.styles[name]; ok {
			sr.applyStyleDef(resolved, def)
		}
	}

	if !resolved.IsSection {
		resolved.IsSection, resolved.SectionLevel = detectBuiltInHeading(styleName)
	}
	if !resolved.IsSection && styleDef.DisplayName != "" {
		resolved.IsSection, resolved.SectionLevel = detectBuiltInHeading(styleDef.DisplayName)
	}

	sr.resolved[styleName] = resolved
	return resolved
}

// NamedAncestor maps an automatic style to its nearest named ancestor.
// Automatic style names (P1, T4, ...) are generator artifacts; the named
// ancestor is what a style mapping can address.
func (sr *StyleResolver) NamedAncestor(styleName string) string {
	visited := make(map[string]bool)

	current := styleName
	for current != "" && sr.automatic[current] && !visited[current] {
		visited[current] = true
		def, ok := sr.styles[current]
		if !ok || def.ParentStyleName == "" {
			return current
		}
		current = def.ParentStyleName
	}
	return current
}

// buildInheritanceChain returns style names from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleName string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleName
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		if def, ok := sr.styles[current]; ok {
			current = def.ParentStyleName
		} else {
			break
		}
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	if tpr := def.TextProps; tpr != nil {
		if tpr.FontWeight == "bold" {
			resolved.Bold = true
		}
		if tpr.FontStyle == "italic" {
			resolved.Italic = true
		}
		if strings.HasPrefix(tpr.TextPosition, "super") {
			resolved.Superscript = true
		}
	}

	if def.DefaultOutlineLevel != "" {
		if level, err := strconv.Atoi(def.DefaultOutlineLevel); err == nil && level >= 1 && level <= 9 {
			resolved.IsSection = true
			resolved.SectionLevel = level
		}
	}
}

// IsOrderedList reports whether the list style at the given 0-based level
// uses a numbered format. Unknown styles default to unordered.
func (sr *StyleResolver) IsOrderedList(listStyleName string, level int) bool {
	ls, ok := sr.listStyles[listStyleName]
	if !ok {
		return false
	}

	levelStr := strconv.Itoa(level + 1) // ODF levels are 1-based
	for _, nl := range ls.NumberLevels {
		if nl.Level == levelStr {
			return true
		}
	}
	return false
}

// detectBuiltInHeading checks for common heading style names. ODF encodes
// spaces in style names as _20_, so "Heading_20_1" is "Heading 1".
func detectBuiltInHeading(styleName string) (bool, int) {
	name := strings.ToLower(strings.ReplaceAll(styleName, "_20_", " "))

	switch name {
	case "title":
		return true, 1
	case "subtitle":
		return true, 2
	}

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
