package linefold

// segKind classifies a segment for the fold and emission passes. The
// kind is assigned when the segment is created so the passes never
// re-derive it from the text.
type segKind uint8

const (
	segPlain segKind = iota
	segOpening
	segClosing
)

// segment is a contiguous piece of line text between potential break
// points. A bracket segment holds exactly one bracket character.
type segment struct {
	text string
	kind segKind
}

func bracketKind(r rune) segKind {
	switch r {
	case '(', '[':
		return segOpening
	case ')', ']':
		return segClosing
	}
	return segPlain
}

// appendToLast extends the current segment without adding a break
// opportunity.
func (w *Writer) appendToLast(s string) {
	w.segments[len(w.segments)-1].text += s
	w.spaceBefore = false
}

// startSegment records the wrap parameters carried by a space and opens
// a new segment. The parameters recorded by the last space win.
func (w *Writer) startSegment(indentLevel int, linePrefix string) {
	w.indentLevel = indentLevel
	w.linePrefix = linePrefix
	w.segments = append(w.segments, segment{})
	w.spaceBefore = true
}

// appendBracket closes the current segment around a bracket character
// and opens an empty segment after it. An empty current segment becomes
// the bracket segment itself; a deliberate space that created that
// empty segment survives as literal text on the segment before an
// opening bracket.
func (w *Writer) appendBracket(r rune) {
	kind := bracketKind(r)
	last := len(w.segments) - 1
	if w.segments[last].text == "" && w.segments[last].kind == segPlain {
		if w.spaceBefore && kind == segOpening && last > 0 {
			w.segments[last-1].text += " "
		}
		w.segments[last] = segment{text: string(r), kind: kind}
	} else {
		w.segments = append(w.segments, segment{text: string(r), kind: kind})
	}
	w.segments = append(w.segments, segment{})
	w.spaceBefore = false
}
