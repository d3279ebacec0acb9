package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/linefold"
)

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestClosedMultiInputReaderStopsOpening(t *testing.T) {
	opened := 0
	m := &multiInputReader{sources: []inputSource{{
		open: func() (io.Reader, io.Closer, error) {
			opened++
			return strings.NewReader("never"), nil, nil
		},
	}}}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	n, err := m.Read(make([]byte, 8))
	if n != 0 || err != io.EOF {
		t.Fatalf("read after close: got (%d, %v), want (0, io.EOF)", n, err)
	}
	if opened != 0 {
		t.Fatalf("closed reader opened %d pending sources", opened)
	}
}

func TestParseMarker(t *testing.T) {
	r, err := parseMarker("~")
	if err != nil || r != '~' {
		t.Fatalf("single rune: got (%q, %v)", r, err)
	}
	if _, err := parseMarker("ab"); err == nil {
		t.Fatal("expected error for multi-rune marker")
	}
	r, err = parseMarker("")
	if err != nil || r != linefold.NonBreakingSpace {
		t.Fatalf("empty marker default: got (%q, %v)", r, err)
	}
}
