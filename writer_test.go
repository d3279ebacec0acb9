package linefold

import (
	"errors"
	"strings"
	"testing"
)

func wrapString(t *testing.T, src string, width, level int, prefix string) string {
	t.Helper()
	var out strings.Builder
	w := NewWriter(&out, "  ", width)
	if err := w.Append(src, level, prefix); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return out.String()
}

func TestSpaceBecomesBreak(t *testing.T) {
	got := wrapString(t, "abcde fghij", 10, 1, "")
	if want := "abcde\n  fghij"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInlineBracketGroup(t *testing.T) {
	got := wrapString(t, "a(b,·c)", 10, 1, "")
	if want := "a(b, c)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExplodedBracketGroup(t *testing.T) {
	got := wrapString(t, "foo(aaaaaaaa, bbbbbbbb, cccccccc)", 10, 0, "")
	want := "foo(\n    aaaaaaaa,\n    bbbbbbbb,\n    cccccccc\n  )"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnsafeBreakFoldsIntoPredecessor(t *testing.T) {
	if got := wrapString(t, "x -1", 5, 1, ""); got != "x -1" {
		t.Fatalf("got %q, want %q", got, "x -1")
	}
	// The sign sticks to its predecessor even when the line must break.
	if got := wrapString(t, "x - y", 4, 1, ""); got != "x -\n  y" {
		t.Fatalf("got %q, want %q", got, "x -\n  y")
	}
}

func TestSignAfterDoubleSpaceNeverHeadsLine(t *testing.T) {
	got := wrapString(t, "xx  -aa", 4, 1, "")
	if want := "xx  -aa"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArrowIsSafeBreak(t *testing.T) {
	got := wrapString(t, "receiver ->handler", 10, 1, "")
	if want := "receiver\n  ->handler"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAppendNonWrapping(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 1)
	if err := w.AppendNonWrapping("a b"); err != nil {
		t.Fatalf("append non-wrapping: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.String() != "a b" {
		t.Fatalf("got %q, want %q", out.String(), "a b")
	}
}

func TestAppendNonWrappingRejectsNewline(t *testing.T) {
	w := NewWriter(&strings.Builder{}, "  ", 80)
	if err := w.AppendNonWrapping("a\nb"); !errors.Is(err, ErrNonWrappingNewline) {
		t.Fatalf("got %v, want ErrNonWrappingNewline", err)
	}
}

func TestClosedWriterFailsLoudly(t *testing.T) {
	w := NewWriter(&strings.Builder{}, "  ", 80)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Append("x", -1, ""); !errors.Is(err, ErrClosed) {
		t.Fatalf("Append after close: got %v, want ErrClosed", err)
	}
	if err := w.AppendNonWrapping("x"); !errors.Is(err, ErrClosed) {
		t.Fatalf("AppendNonWrapping after close: got %v, want ErrClosed", err)
	}
	if err := w.Newline(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Newline after close: got %v, want ErrClosed", err)
	}
	if err := w.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second Close: got %v, want ErrClosed", err)
	}
}

func TestCloseWithNoPendingTextEmitsNothing(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 80)
	if err := w.Append("hi there", 1, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Newline(); err != nil {
		t.Fatalf("newline: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.String() != "hi there\n" {
		t.Fatalf("got %q, want %q", out.String(), "hi there\n")
	}
}

func TestForcedNewlineResetsLine(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 10)
	if err := w.Append("abcde \nfghij", 1, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// The trailing space before the forced newline is dropped and the
	// halves never wrap against each other.
	if out.String() != "abcde\nfghij" {
		t.Fatalf("got %q, want %q", out.String(), "abcde\nfghij")
	}
}

func TestAppendAccumulatesAcrossCalls(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 10)
	for _, part := range []string{"abcde", " ", "fghij"} {
		if err := w.Append(part, 1, ""); err != nil {
			t.Fatalf("append %q: %v", part, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.String() != "abcde\n  fghij" {
		t.Fatalf("got %q, want %q", out.String(), "abcde\n  fghij")
	}
}

func TestLinePrefixOnContinuationLines(t *testing.T) {
	got := wrapString(t, "aaaa bbbb cccc", 5, 1, "// ")
	want := "aaaa\n  // bbbb\n  // cccc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLastSpaceWinsWrapParameters(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 5)
	if err := w.Append("aaaa ", 3, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Append("bbbb cccc", 1, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if want := "aaaa\n  bbbb\n  cccc"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestDeliberateSpaceBeforeOpeningBracket(t *testing.T) {
	if got := wrapString(t, "call (arg)", 80, 1, ""); got != "call (arg)" {
		t.Fatalf("got %q, want %q", got, "call (arg)")
	}
}

func TestSquareBrackets(t *testing.T) {
	if got := wrapString(t, "list[index] = value", 80, 1, ""); got != "list[index] = value" {
		t.Fatalf("got %q, want %q", got, "list[index] = value")
	}
}

func TestSiblingBracketGroups(t *testing.T) {
	if got := wrapString(t, "send(a, b) recv(c, d)", 80, 1, ""); got != "send(a, b) recv(c, d)" {
		t.Fatalf("wide: got %q", got)
	}
	// Only the first group is wrap-eligible; the second folds into an
	// unbreakable unit and moves to the next line whole.
	want := "send(a, b)\n  recv(c, d)"
	if got := wrapString(t, "send(a, b) recv(c, d)", 12, 1, ""); got != want {
		t.Fatalf("narrow: got %q, want %q", got, want)
	}
}

func TestBracketGroupNeverPartiallyWraps(t *testing.T) {
	want := "pack(\n      alpha,\n      beta\n    )"
	if got := wrapString(t, "pack(alpha, beta)", 12, 1, ""); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRunResumesAfterExplodedGroup(t *testing.T) {
	got := wrapString(t, "one two three(four, five) six", 10, 1, "")
	want := "one two\n  three(\n      four,\n      five\n    ) six"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNestedGroupStaysInline(t *testing.T) {
	if got := wrapString(t, "deep(nest(a), b)", 80, 1, ""); got != "deep(nest(a), b)" {
		t.Fatalf("got %q, want %q", got, "deep(nest(a), b)")
	}
}

func TestCustomNonBreakingMarker(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, "  ", 3, WithNonBreakingMarker('~'))
	if err := w.Append("a~b", 1, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.String() != "a b" {
		t.Fatalf("got %q, want %q", out.String(), "a b")
	}
}

func TestMarkerNeverBreaks(t *testing.T) {
	got := wrapString(t, "aa·bb·cc dd", 5, 1, "")
	want := "aa bb cc\n  dd"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeterministicOutput(t *testing.T) {
	run := func() string {
		var out strings.Builder
		w := NewWriter(&out, "  ", 14)
		_ = w.Append("emit(a, b) then flush(c) now", 1, "")
		_ = w.Newline()
		_ = w.Append("tail -1 +2", 2, "| ")
		_ = w.Close()
		return out.String()
	}
	first := run()
	for i := 0; i < 10; i++ {
		if got := run(); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestWidthFuncOverride(t *testing.T) {
	// Treat every segment as zero width so nothing ever wraps.
	var out strings.Builder
	w := NewWriter(&out, "  ", 3, WithWidthFunc(func(string) int { return 0 }))
	if err := w.Append("aaaa bbbb cccc", 1, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.String() != "aaaa bbbb cccc" {
		t.Fatalf("got %q, want %q", out.String(), "aaaa bbbb cccc")
	}
}

func TestANSISequencesHaveZeroWidth(t *testing.T) {
	styled := "\x1b[1mabcde\x1b[0m fghij"
	got := wrapString(t, styled, 11, 1, "")
	if strings.Contains(got, "\n") {
		t.Fatalf("styled text wrapped despite fitting: %q", got)
	}
}
