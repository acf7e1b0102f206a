// Package subtle provides the low-level digit arithmetic behind basen.
// It converts between big-endian byte buffers and base-radix digit buffers and
// implements the FF1 permutation over digit strings. It knows nothing about
// alphabets; most users want the high-level API in the parent package.
package subtle

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// MinRadix is the smallest supported radix.
	MinRadix = 2
	// MaxRadix is the largest supported radix. Digits are stored in single bytes.
	MaxRadix = 255
)

var (
	// ErrOverflow is returned when a digit sequence denotes a value that does
	// not fit in the destination buffer.
	ErrOverflow = errors.New("overflow")

	// ErrInvalidDigit is returned when a digit is not below the radix.
	ErrInvalidDigit = errors.New("invalid digit")
)

// DigitError reports the first digit that is not below the radix.
type DigitError struct {
	Pos   int
	Digit byte
	Radix int
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("invalid digit %d at position %d (radix %d)", e.Digit, e.Pos, e.Radix)
}

func (e *DigitError) Unwrap() error { return ErrInvalidDigit }

// EncodeDigits converts the big-endian byte buffer src into base-radix digits,
// most significant first.
//
// dst is the zeroed initial accumulator. Its length fixes the minimum number of
// digits produced (unused high digits stay zero) and it grows on demand when
// the value needs more digits. The returned slice may share dst's backing array.
func EncodeDigits(src []byte, radix int, dst []byte) []byte {
	mustRadix(radix)
	r := uint(radix)

	// dst is a little-endian base-radix accumulator while bytes are injected.
	for _, b := range src {
		carry := uint(b)
		for i := range dst {
			carry += uint(dst[i]) << 8
			dst[i] = byte(carry % r)
			carry /= r
		}
		for carry > 0 {
			dst = append(dst, byte(carry%r))
			carry /= r
		}
	}

	reverse(dst)
	return dst
}

// DecodeDigits converts base-radix digits, most significant first, into the
// big-endian byte buffer dst. The whole of dst is overwritten.
//
// Digits are injected in order, so the first failure wins: a *DigitError
// (matching ErrInvalidDigit) for a digit not below radix, or ErrOverflow once
// the value needs more than len(dst) bytes. On error dst is zeroed.
func DecodeDigits(digits []byte, radix int, dst []byte) error {
	mustRadix(radix)
	r := uint(radix)
	clear(dst)

	// dst is a little-endian base-256 accumulator while digits are injected.
	for i, d := range digits {
		if uint(d) >= r {
			clear(dst)
			return &DigitError{Pos: i, Digit: d, Radix: radix}
		}
		carry := uint(d)
		for j := range dst {
			carry += uint(dst[j]) * r
			dst[j] = byte(carry)
			carry >>= 8
		}
		if carry != 0 {
			clear(dst)
			return ErrOverflow
		}
	}

	reverse(dst)
	return nil
}

// UpperBound returns ceil(size*8 / floor(log2(radix))), an upper bound on the
// number of base-radix digits needed for any size-byte value.
func UpperBound(size, radix int) int {
	mustRadix(radix)
	b := bitsPerDigit(radix)
	return (size*8 + b - 1) / b
}

// Width returns the exact number of base-radix digits needed for the largest
// size-byte value (all bytes 0xFF). It is the padded width of fixed-length
// encodings. The result never exceeds UpperBound.
func Width(size, radix int) int {
	if size < 0 {
		panic(fmt.Sprintf("subtle: negative size %d", size))
	}
	ub := UpperBound(size, radix)

	ones := make([]byte, size)
	for i := range ones {
		ones[i] = 0xFF
	}
	n := len(EncodeDigits(ones, radix, make([]byte, 0, ub)))
	if n > ub {
		panic(fmt.Sprintf("subtle: width %d exceeds bound %d for size %d radix %d", n, ub, size, radix))
	}
	return n
}

// TrimLeadingZeros returns digits without its leading zero digits.
func TrimLeadingZeros(digits []byte) []byte {
	for i, d := range digits {
		if d != 0 {
			return digits[i:]
		}
	}
	return digits[:0]
}

// bitsPerDigit is floor(log2(radix)).
func bitsPerDigit(radix int) int {
	return bits.Len(uint(radix)) - 1
}

// bitLength returns the number of bits needed to represent radix-1.
func bitLength(radix int) int {
	return bits.Len(uint(radix - 1))
}

func mustRadix(radix int) {
	if radix < MinRadix || radix > MaxRadix {
		panic(fmt.Sprintf("subtle: radix %d outside [%d, %d]", radix, MinRadix, MaxRadix))
	}
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
