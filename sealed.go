package basen

import (
	"fmt"

	"github.com/vdparikh/basen/subtle"
)

// Permutation is a keyed, length-preserving bijection on base-radix digit
// strings. It must be deterministic: the same digits always map to the same
// output. subtle.FF1 implements it; see the tinkbasen package for building one
// from a Tink keyset.
type Permutation interface {
	// Encrypt maps digits to another digit string of the same length and radix.
	Encrypt(digits []byte, radix int) ([]byte, error)

	// Decrypt is the inverse of Encrypt.
	Decrypt(digits []byte, radix int) ([]byte, error)
}

var _ Permutation = (*subtle.FF1)(nil)

// Sealed is a fixed-length encoding whose digit string is passed through a
// Permutation. Output keeps the alphabet and the padded width but no longer
// reveals the value or the ordering of values, which suits sequential IDs
// exposed to clients.
type Sealed struct {
	alphabet *Alphabet
	perm     Permutation
}

// NewSealed creates a sealed encoding over a and p.
func NewSealed(a *Alphabet, p Permutation) *Sealed {
	return &Sealed{
		alphabet: a,
		perm:     p,
	}
}

// Alphabet returns the underlying alphabet.
func (s *Sealed) Alphabet() *Alphabet {
	return s.alphabet
}

// EncodeFixed seals src and returns PaddedWidth(len(src)) characters.
func (s *Sealed) EncodeFixed(src []byte) (string, error) {
	a := s.alphabet

	// Step 1: plain fixed-width digits
	digits := subtle.EncodeDigits(src, a.Radix(), make([]byte, a.PaddedWidth(len(src))))

	// Step 2: permute within the same width
	sealed, err := s.perm.Encrypt(digits, a.Radix())
	if err != nil {
		return "", fmt.Errorf("failed to seal: %w", err)
	}

	return string(a.appendChars(nil, sealed)), nil
}

// DecodeFixed opens a sealed string into a new size-byte buffer.
//
// Every string of the right width and alphabet opens to some digit string,
// but only those below 256^size are values; the rest fail with ErrOverflow.
func (s *Sealed) DecodeFixed(str string, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	a := s.alphabet

	if want := a.PaddedWidth(size); len(str) != want {
		return nil, &LengthError{Want: want, Got: len(str)}
	}

	digits, err := a.digits(str)
	if err != nil {
		return nil, err
	}

	plain, err := s.perm.Decrypt(digits, a.Radix())
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}

	dst := make([]byte, size)
	if err := subtle.DecodeDigits(plain, a.Radix(), dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// SealUint returns the sealed fixed-length encoding of v.
func SealUint[T Unsigned](s *Sealed, v T) (string, error) {
	var buf [8]byte
	return s.EncodeFixed(putUint(buf[:sizeOf[T]()], v))
}

// OpenUint opens a sealed encoding of a T.
func OpenUint[T Unsigned](s *Sealed, str string) (T, error) {
	b, err := s.DecodeFixed(str, sizeOf[T]())
	if err != nil {
		return 0, err
	}
	return getUint[T](b), nil
}
