package basen

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vdparikh/basen/subtle"
)

// EncodeFixed encodes src zero-padded to PaddedWidth(len(src)) characters.
// Every buffer of the same size encodes to the same length.
func (a *Alphabet) EncodeFixed(src []byte) string {
	return string(a.AppendFixed(nil, src))
}

// AppendFixed appends the fixed-length encoding of src to dst.
func (a *Alphabet) AppendFixed(dst, src []byte) []byte {
	digits := subtle.EncodeDigits(src, a.Radix(), make([]byte, a.PaddedWidth(len(src))))
	return a.appendChars(dst, digits)
}

// EncodeMinimal encodes src without leading zero characters. An all-zero
// buffer encodes to "".
func (a *Alphabet) EncodeMinimal(src []byte) string {
	return string(a.AppendMinimal(nil, src))
}

// AppendMinimal appends the minimal encoding of src to dst.
func (a *Alphabet) AppendMinimal(dst, src []byte) []byte {
	digits := subtle.EncodeDigits(src, a.Radix(), make([]byte, 0, subtle.UpperBound(len(src), a.Radix())))
	return a.appendChars(dst, subtle.TrimLeadingZeros(digits))
}

// DecodeFixed decodes a fixed-length string into a new size-byte buffer.
// s must be exactly PaddedWidth(size) characters long.
func (a *Alphabet) DecodeFixed(s string, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	dst := make([]byte, size)
	if err := a.DecodeFixedInto(dst, s); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeFixedInto is like DecodeFixed but decodes into dst, whose length is
// the target size. On error dst is zeroed.
func (a *Alphabet) DecodeFixedInto(dst []byte, s string) error {
	if want := a.PaddedWidth(len(dst)); len(s) != want {
		clear(dst)
		return &LengthError{Want: want, Got: len(s)}
	}
	return a.DecodeMinimalInto(dst, s)
}

// DecodeMinimal decodes s into a new size-byte buffer. Any length is accepted,
// including leading zero characters; "" decodes to zero.
func (a *Alphabet) DecodeMinimal(s string, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	dst := make([]byte, size)
	if err := a.DecodeMinimalInto(dst, s); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeMinimalInto is like DecodeMinimal but decodes into dst, whose length
// is the target size. On error dst is zeroed.
//
// Characters are consumed left to right and the first failure is reported:
// an invalid character after an overflowing prefix yields ErrOverflow.
func (a *Alphabet) DecodeMinimalInto(dst []byte, s string) error {
	err := subtle.DecodeDigits(a.rawDigits(s), a.Radix(), dst)
	var de *subtle.DigitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &de):
		return &CharError{Pos: de.Pos, Char: s[de.Pos]}
	default:
		return fmt.Errorf("%w: %d characters do not fit in %d bytes", err, len(s), len(dst))
	}
}

// rawDigits maps every character of s to its digit value, or to invalidDigit
// (never below the radix) for characters outside the alphabet.
func (a *Alphabet) rawDigits(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < utf8.RuneSelf {
			out[i] = a.decode[c]
		} else {
			out[i] = invalidDigit
		}
	}
	return out
}

// digits maps every character of s to its digit value, failing on the first
// character outside the alphabet.
func (a *Alphabet) digits(s string) ([]byte, error) {
	out := a.rawDigits(s)
	for i, d := range out {
		if d == invalidDigit {
			return nil, &CharError{Pos: i, Char: s[i]}
		}
	}
	return out, nil
}

func (a *Alphabet) appendChars(dst, digits []byte) []byte {
	for _, d := range digits {
		dst = append(dst, a.encode[d])
	}
	return dst
}
