package docx

import "strconv"

// NumberingResolver resolves numbering definitions from word/numbering.xml.
// It answers the one question the converter has about a list: does this
// numId/level pair describe an ordered (numbered) or unordered (bulleted)
// list.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}

	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}

	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}

	return nr
}

// IsOrdered reports whether the numbering definition for numID at the given
// level uses a numbered format. Unknown definitions default to unordered.
func (nr *NumberingResolver) IsOrdered(numID string, level int) bool {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return false
	}

	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return false
	}

	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
			return true
		default:
			return false
		}
	}

	return false
}

// IsListParagraph reports whether a paragraph with the given numbering
// reference belongs to a list. Word emits numId "0" to cancel inherited
// numbering.
func (nr *NumberingResolver) IsListParagraph(numID string) bool {
	return numID != "" && numID != "0"
}
