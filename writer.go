package linefold

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

var (
	// ErrClosed reports a mutating call on a closed Writer.
	ErrClosed = errors.New("writer already closed")
	// ErrNonWrappingNewline reports a newline inside non-wrapping text.
	ErrNonWrappingNewline = errors.New("newline in non-wrapping text")
)

// Writer emits soft line-wrapped text to an output sink. It buffers
// exactly one line of segments at a time; a forced newline or Close
// flushes the buffer through the fold and emission passes. A Writer is
// owned by a single caller and is not safe for concurrent use.
type Writer struct {
	out      io.Writer
	indent   string
	limit    int
	marker   rune
	width    func(string) int
	specials string

	segments    []segment
	indentLevel int
	linePrefix  string
	spaceBefore bool
	closed      bool
}

// NewWriter returns a Writer that wraps its output at columnLimit
// columns, indenting wrapped continuation lines with repetitions of
// indent.
func NewWriter(out io.Writer, indent string, columnLimit int, opts ...Option) *Writer {
	cfg := writerConfig{marker: NonBreakingSpace, width: ansi.PrintableRuneWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Writer{
		out:         out,
		indent:      indent,
		limit:       columnLimit,
		marker:      cfg.marker,
		width:       cfg.width,
		specials:    " \n()[]" + string(cfg.marker),
		segments:    []segment{{}},
		indentLevel: -1,
	}
}

// Append adds text to the current line, turning every plain space into
// a potential line break. indentLevel counts indent units for wrapped
// continuation lines and linePrefix is inserted after that indentation;
// both are recorded by each space processed, last write wins. Pass
// indentLevel -1 when no wrap indent applies. Newlines force a flush,
// the non-breaking marker becomes a literal space, and bracket
// characters delimit groups that wrap as a unit.
func (w *Writer) Append(text string, indentLevel int, linePrefix string) error {
	if w.closed {
		return ErrClosed
	}
	pos := 0
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		switch {
		case r == ' ':
			w.startSegment(indentLevel, linePrefix)
			pos++
		case r == '\n':
			if err := w.Newline(); err != nil {
				return err
			}
			pos++
		case r == w.marker:
			w.appendToLast(" ")
			pos += size
		case bracketKind(r) != segPlain:
			w.appendBracket(r)
			pos++
		default:
			next := strings.IndexAny(text[pos:], w.specials)
			if next == -1 {
				next = len(text) - pos
			}
			w.appendToLast(text[pos : pos+next])
			pos += next
		}
	}
	return nil
}

// AppendNonWrapping adds text verbatim to the current segment with no
// break opportunities, even at embedded spaces. Text containing a
// newline is rejected.
func (w *Writer) AppendNonWrapping(text string) error {
	if w.closed {
		return ErrClosed
	}
	if strings.ContainsRune(text, '\n') {
		return ErrNonWrappingNewline
	}
	w.appendToLast(text)
	return nil
}

// Newline flushes the buffered line and writes a literal line break,
// independent of the column limit.
func (w *Writer) Newline() error {
	if w.closed {
		return ErrClosed
	}
	if err := w.flush(); err != nil {
		return err
	}
	if err := w.writeString("\n"); err != nil {
		return err
	}
	w.indentLevel = -1
	return nil
}

// Close flushes any buffered line and permanently disables the Writer.
// Every further call, including a second Close, fails with ErrClosed.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	err := w.flush()
	w.closed = true
	return err
}

// flush runs the fold passes over the buffered segments, emits the
// normalized line, and resets the buffer.
func (w *Writer) flush() error {
	segs := w.segments
	// Trailing empty segments would emit dangling separators; interior
	// empties carry deliberate spaces and stay.
	for len(segs) > 1 && segs[len(segs)-1].text == "" && segs[len(segs)-1].kind == segPlain {
		segs = segs[:len(segs)-1]
	}
	segs = foldUnsafeBreaks(segs)
	segs = foldBrackets(segs)
	err := w.emitSegments(segs)
	w.segments = append(w.segments[:0], segment{})
	w.spaceBefore = false
	return err
}

func (w *Writer) writeString(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		return fmt.Errorf("linefold: write: %w", err)
	}
	return nil
}
