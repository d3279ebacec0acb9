package linefold

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// FoldRequest configures Fold.
type FoldRequest struct {
	Reader      io.Reader
	Writer      io.Writer
	Columns     int
	Indent      string
	IndentLevel int
	LinePrefix  string
	Options     []Option
}

const defaultIndent = "  "

var readerPool = sync.Pool{
	New: func() any { return bufio.NewReaderSize(nil, 32*1024) },
}

// Fold reads plain text from Reader and soft-wraps it to Writer at the
// requested column limit. Existing newlines are preserved as forced
// line breaks; everything else flows through a Writer, so spaces become
// break opportunities and bracket groups wrap as units. Input is
// validated incrementally and rejected if it is not UTF-8 text.
func Fold(req FoldRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("linefold: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("linefold: Writer is nil")
	}
	if req.Columns <= 0 {
		return fmt.Errorf("linefold: Columns must be > 0")
	}
	indent := req.Indent
	if indent == "" {
		indent = defaultIndent
	}
	w := NewWriter(req.Writer, indent, req.Columns, req.Options...)
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(req.Reader)
	defer func() {
		br.Reset(nil)
		readerPool.Put(br)
	}()
	var v validator
	v.reset()
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if verr := v.addString(line); verr != nil {
				return verr
			}
			if aerr := w.Append(line, req.IndentLevel, req.LinePrefix); aerr != nil {
				return aerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("linefold: read: %w", err)
		}
	}
	if err := v.finish(); err != nil {
		return err
	}
	return w.Close()
}

// FoldString soft-wraps s at columns and returns the result.
func FoldString(s string, columns int, indent string, opts ...Option) (string, error) {
	var out strings.Builder
	err := Fold(FoldRequest{
		Reader:  strings.NewReader(s),
		Writer:  &out,
		Columns: columns,
		Indent:  indent,
		Options: opts,
	})
	return out.String(), err
}
