// Package basen converts fixed-width unsigned integers and byte arrays to and
// from text in an arbitrary radix N (2 to 255) using a caller-supplied
// alphabet of N distinct ASCII characters.
//
// Values are big-endian byte buffers treated as unsigned integers. Two
// encodings are provided:
//
//   - Fixed: zero-padded to the width of the largest value of the buffer's
//     size, so every value of a given size encodes to the same length.
//   - Minimal: no leading zero characters; zero encodes to "".
//
// Example usage:
//
//	s := basen.Base58.EncodeFixed([]byte{0x01, 0x00})
//	// s == "15R"
//
//	b, err := basen.Base58.DecodeFixed(s, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id := basen.EncodeUint(basen.Base36, uint64(42))
//	// id == "0000000000016"
//
// Alphabets are immutable and safe for concurrent use. The package never logs;
// every failure is returned to the caller as an error matching one of
// ErrInvalidAlphabet, ErrInvalidCharacter, ErrOverflow or ErrInvalidLength.
package basen

import (
	"fmt"
	"math/bits"
	"unicode/utf8"

	"github.com/vdparikh/basen/subtle"
)

const (
	// MinRadix is the smallest alphabet size.
	MinRadix = subtle.MinRadix
	// MaxRadix is the largest alphabet size.
	MaxRadix = subtle.MaxRadix

	// invalidDigit marks characters that are not part of the alphabet.
	invalidDigit = 0xFF
)

// Alphabet is a bijection between digit values 0..N-1 and N distinct ASCII
// characters. The character at position i of the alphabet is digit i; the
// first character is the zero digit used for padding.
type Alphabet struct {
	encode []byte
	decode [utf8.RuneSelf]byte

	// widths[i] is the padded width for buffers of 1<<i bytes.
	widths [7]int
}

// NewAlphabet validates chars and builds the forward and reverse lookup tables.
// It fails when there are fewer than MinRadix or more than MaxRadix characters,
// when a character is outside the ASCII range, or when a character repeats.
func NewAlphabet(chars string) (*Alphabet, error) {
	n := len(chars)
	if n < MinRadix || n > MaxRadix {
		return nil, fmt.Errorf("%w: %d characters, need %d to %d", ErrInvalidAlphabet, n, MinRadix, MaxRadix)
	}

	a := &Alphabet{encode: []byte(chars)}
	for i := range a.decode {
		a.decode[i] = invalidDigit
	}

	for i := 0; i < n; i++ {
		c := chars[i]
		if c >= utf8.RuneSelf {
			return nil, fmt.Errorf("%w: character 0x%02x at position %d is not ASCII", ErrInvalidAlphabet, c, i)
		}
		if a.decode[c] != invalidDigit {
			return nil, fmt.Errorf("%w: duplicate character %q at position %d", ErrInvalidAlphabet, c, i)
		}
		a.decode[c] = byte(i)
	}

	for i := range a.widths {
		a.widths[i] = subtle.Width(1<<i, n)
	}

	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. It is intended for
// package-level alphabet variables.
func MustAlphabet(chars string) *Alphabet {
	a, err := NewAlphabet(chars)
	if err != nil {
		panic(fmt.Sprintf("basen: %v", err))
	}
	return a
}

// Radix returns the number of digits N.
func (a *Alphabet) Radix() int {
	return len(a.encode)
}

// String returns the alphabet's characters in digit order.
func (a *Alphabet) String() string {
	return string(a.encode)
}

// Zero returns the character of digit 0.
func (a *Alphabet) Zero() byte {
	return a.encode[0]
}

// Char returns the character of digit d. It panics if d >= Radix().
func (a *Alphabet) Char(d byte) byte {
	return a.encode[d]
}

// Digit returns the digit value of character c and whether c belongs to the
// alphabet.
func (a *Alphabet) Digit(c byte) (byte, bool) {
	if c >= utf8.RuneSelf {
		return 0, false
	}
	d := a.decode[c]
	return d, d != invalidDigit
}

// PaddedWidth returns the number of characters of a fixed-length encoding of
// a size-byte buffer, the digit count of the largest size-byte value.
func (a *Alphabet) PaddedWidth(size int) int {
	if size > 0 && size&(size-1) == 0 {
		if i := bits.TrailingZeros(uint(size)); i < len(a.widths) {
			return a.widths[i]
		}
	}
	return subtle.Width(size, a.Radix())
}

// PaddedWidth returns the fixed-length encoding width of a size-byte buffer in
// the given radix. It panics if radix is outside [MinRadix, MaxRadix] or size
// is negative.
func PaddedWidth(size, radix int) int {
	return subtle.Width(size, radix)
}
