package linefold

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or appears
// to be binary data.
func ValidateInput(src []byte) error {
	var v validator
	if err := v.addString(string(src)); err != nil {
		return err
	}
	return v.finish()
}

// validator accumulates binary-detection stats across stream chunks so
// Fold can reject binary input without buffering the document. Chunks
// must be split on rune boundaries; Fold splits on newline bytes, which
// never occur inside a multi-byte rune.
type validator struct {
	total   int
	control int
}

func (v *validator) reset() {
	v.total = 0
	v.control = 0
}

func (v *validator) addString(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == 0x00 {
			return ErrBinaryInput
		}
		v.total++
		if isControlByte(b) {
			v.control++
			if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
				return ErrBinaryInput
			}
		}
	}
	return nil
}

func (v *validator) finish() error {
	if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	if b == '\t' || b == '\n' || b == '\r' {
		return false
	}
	return b < 0x20 || b == 0x7F
}
