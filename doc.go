// Package linefold emits soft line-wrapped text for source generators.
//
// A Writer consumes a flat token stream in which every plain space is a
// potential line break, '·' is a non-breaking space, and the bracket
// characters ( ) [ ] delimit groups that either fit on one line or
// explode fully onto indented lines. Break decisions honor a column
// limit, an indent level recorded per line, and an optional line prefix
// inserted after indentation on wrapped continuation lines.
//
// Core properties:
//   - Deterministic output for a fixed call sequence
//   - Bracket groups never partially wrap
//   - Wrapped lines never start with a dangling + or - sign
//   - ANSI-aware column measurement
//
// Example:
//
//	w := linefold.NewWriter(os.Stdout, "  ", 40)
//	if err := w.Append("result := combine(left, right, carry)", 1, ""); err != nil {
//		log.Fatal(err)
//	}
//	if err := w.Close(); err != nil {
//		log.Fatal(err)
//	}
//
// For plain text streams, Fold drives a Writer from an io.Reader in a
// single call, preserving existing newlines as forced breaks.
package linefold
