package linefold

import "strings"

// foldUnsafeBreaks merges segments that cannot safely start a line,
// such as a bare sign or negative number, into their predecessor so no
// break lands before them. A merge can itself produce an unsafe
// segment, when the predecessor was an empty segment carrying a
// deliberate space, so the merged position is re-examined before the
// scan moves on. The first segment is never folded.
func foldUnsafeBreaks(segs []segment) []segment {
	for i := 1; i < len(segs); {
		if !unsafeBreak(segs[i].text) {
			i++
			continue
		}
		segs[i-1] = segment{text: segs[i-1].text + " " + segs[i].text}
		segs = append(segs[:i], segs[i+1:]...)
		if i > 1 {
			i--
		}
	}
	return segs
}

// unsafeBreak reports whether text would read as a continuation or sign
// rather than a new token at the start of a line: it begins, after
// optional leading whitespace, with + or - not followed by >.
func unsafeBreak(text string) bool {
	t := strings.TrimLeft(text, " \t")
	if t == "" || (t[0] != '+' && t[0] != '-') {
		return false
	}
	return len(t) < 2 || t[1] != '>'
}

// outerBracketPair returns the indexes of the first top-level opening
// bracket segment and the closing segment that returns it to depth
// zero, or -1, -1 when the line holds no such pair. Stray closing
// brackets before the first opening are ignored. Only the first pair is
// protected; later sibling groups fall into the generic fold.
func outerBracketPair(segs []segment) (lo, hi int) {
	lo = -1
	depth := 0
	for i, s := range segs {
		switch s.kind {
		case segOpening:
			if lo == -1 {
				lo = i
			}
			depth++
		case segClosing:
			if lo != -1 {
				depth--
				if depth == 0 {
					return lo, i
				}
			}
		}
	}
	return -1, -1
}

// foldBrackets glues dangling bracket segments outside the protected
// outer pair to their neighbours, so no spurious break point survives
// around brackets that cannot head a multiline group. The pair itself
// and its interior keep their break opportunities for the emission
// scan.
func foldBrackets(segs []segment) []segment {
	lo, hi := outerBracketPair(segs)
	out := make([]segment, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		s := segs[i]
		protected := i == lo || i == hi || (lo != -1 && i > lo && i < hi)
		if s.kind == segPlain || protected {
			out = append(out, s)
			continue
		}
		// Dangling bracket: absorb the whole adjacent bracket run.
		text := s.text
		kind := s.kind
		for i+1 < len(segs) && segs[i+1].kind != segPlain && i+1 != lo {
			i++
			text += segs[i].text
			kind = segs[i].kind
		}
		// A trailing opening bracket also absorbs the segment after
		// it; that boundary never came from a space.
		if kind == segOpening && i+1 < len(segs) && i+1 != lo {
			i++
			text += segs[i].text
		}
		if len(out) > 0 && out[len(out)-1].kind == segPlain {
			out[len(out)-1].text += text
		} else {
			out = append(out, segment{text: text})
		}
	}
	return out
}

// emitSegments walks the normalized segments left to right, tracking
// the running column count and deciding break points. An open outer
// bracket group suppresses breaks until its closing bracket, where the
// whole group is emitted inline or exploded onto indented lines.
func (w *Writer) emitSegments(segs []segment) error {
	lo, hi := outerBracketPair(segs)
	level := w.indentLevel
	if level < 0 {
		level = 0
	}
	budget := w.width(w.indent) * level
	start := 0
	col := w.width(segs[0].text)
	wrapNext := false
	for i := 1; i < len(segs); i++ {
		s := segs[i]
		var next int
		switch s.kind {
		case segOpening:
			next = col + w.width(s.text)
		case segClosing:
			// A closing bracket reclaims the space counted before the
			// segment it follows.
			next = col - 1 + w.width(s.text)
		default:
			next = col + 1 + w.width(s.text)
		}
		interior := lo != -1 && i > lo && i < hi
		switch {
		case lo != -1 && i == hi:
			if err := w.emitRange(segs, start, lo, wrapNext); err != nil {
				return err
			}
			if next > w.limit {
				if err := w.emitBracketGroup(segs, lo, hi, true); err != nil {
					return err
				}
				col = w.width(s.text) + budget
			} else {
				if err := w.emitBracketGroup(segs, lo, hi, false); err != nil {
					return err
				}
				col = next
			}
			start = i + 1
			wrapNext = false
		case next > w.limit && !interior && s.text != "":
			if err := w.emitRange(segs, start, i, wrapNext); err != nil {
				return err
			}
			wrapNext = true
			start = i
			col = w.width(s.text) + budget
		default:
			col = next
		}
	}
	return w.emitRange(segs, start, len(segs), wrapNext)
}

// emitRange writes segments [from, to) as one run. A wrapped run is
// preceded by a line break with the recorded indent and prefix. A
// single space separates two adjacent plain segments; boundaries
// touching a bracket segment join directly. Empty segments at the tail
// of the run are dropped so a break point never leaves a dangling
// space before the newline.
func (w *Writer) emitRange(segs []segment, from, to int, wrap bool) error {
	for to > from && segs[to-1].kind == segPlain && segs[to-1].text == "" {
		to--
	}
	if wrap {
		if err := w.emitLineBreak(w.indentLevel); err != nil {
			return err
		}
	}
	for i := from; i < to; i++ {
		if i > from && segs[i-1].kind == segPlain && segs[i].kind == segPlain {
			if err := w.writeString(" "); err != nil {
				return err
			}
		}
		if err := w.writeString(segs[i].text); err != nil {
			return err
		}
	}
	return nil
}

// emitBracketGroup writes the outer pair segs[lo] through segs[hi].
// Inline mode keeps the whole group on the current line. Multiline
// mode puts every interior segment on its own line two indent units
// deeper than the wrap indent and the closing bracket on a line one
// unit deeper.
func (w *Writer) emitBracketGroup(segs []segment, lo, hi int, multiline bool) error {
	if err := w.writeString(segs[lo].text); err != nil {
		return err
	}
	for i := lo + 1; i < hi; i++ {
		if multiline {
			if err := w.emitLineBreak(w.indentLevel + 2); err != nil {
				return err
			}
		} else if i > lo+1 && segs[i-1].kind == segPlain && segs[i].kind == segPlain {
			if err := w.writeString(" "); err != nil {
				return err
			}
		}
		if err := w.writeString(segs[i].text); err != nil {
			return err
		}
	}
	if multiline {
		if err := w.emitLineBreak(w.indentLevel + 1); err != nil {
			return err
		}
	}
	return w.writeString(segs[hi].text)
}

// emitLineBreak starts a wrapped continuation line: a newline, units
// copies of the indent unit, then the recorded line prefix.
func (w *Writer) emitLineBreak(units int) error {
	if err := w.writeString("\n"); err != nil {
		return err
	}
	for i := 0; i < units; i++ {
		if err := w.writeString(w.indent); err != nil {
			return err
		}
	}
	return w.writeString(w.linePrefix)
}
