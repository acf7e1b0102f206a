package basen

import (
	"errors"
	"fmt"

	"github.com/vdparikh/basen/subtle"
)

var (
	// ErrInvalidAlphabet is returned by NewAlphabet for unusable character sets.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrInvalidCharacter is returned when a decoded string contains a
	// character outside the alphabet.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrOverflow is returned when a decoded value does not fit the target size.
	ErrOverflow = subtle.ErrOverflow

	// ErrInvalidLength is returned by fixed-length decoding when the string is
	// not exactly the padded width.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidSize is returned for negative target sizes.
	ErrInvalidSize = errors.New("invalid size")
)

// CharError reports the first character of a decoded string that is not in
// the alphabet. It matches ErrInvalidCharacter with errors.Is.
type CharError struct {
	Pos  int
	Char byte
}

func (e *CharError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

func (e *CharError) Unwrap() error { return ErrInvalidCharacter }

// LengthError reports a fixed-length string of the wrong length. It matches
// ErrInvalidLength with errors.Is.
type LengthError struct {
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid length: expected %d characters, got %d", e.Want, e.Got)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }
