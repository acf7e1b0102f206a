package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

const (
	// ff1Rounds is the number of Feistel rounds (NIST SP 800-38G uses 10).
	ff1Rounds = 10

	// minDomainSize is the smallest radix^n accepted. Smaller domains can be
	// enumerated by an attacker.
	minDomainSize = 100

	// maxInputLength bounds the number of digits per call.
	maxInputLength = 100000
)

var (
	// ErrKeySize is returned for keys that are not valid AES keys.
	ErrKeySize = errors.New("key must be 16, 24 or 32 bytes")

	// ErrDomainTooSmall is returned when radix^n is below the minimum domain size.
	ErrDomainTooSmall = errors.New("domain too small")
)

// FF1 is a keyed, length-preserving permutation on base-radix digit strings
// following the structure of NIST SP 800-38G FF1: an alternating Feistel
// network over the two halves of the string whose round function is an
// AES-CBC-MAC over the radix, the length, the tweak and the numeric value of
// one half.
//
// An FF1 is immutable and safe for concurrent use.
type FF1 struct {
	block cipher.Block
	tweak []byte
}

// NewFF1 creates an FF1 from a raw AES key and a tweak. The tweak is a public,
// non-secret value; different tweaks give unrelated permutations.
func NewFF1(key, tweak []byte) (*FF1, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w, got %d", ErrKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	t := make([]byte, len(tweak))
	copy(t, tweak)

	return &FF1{
		block: block,
		tweak: t,
	}, nil
}

// Encrypt permutes digits, returning a new digit string of the same length
// and radix. digits is not modified.
func (f *FF1) Encrypt(digits []byte, radix int) ([]byte, error) {
	if err := validateDigits(digits, radix); err != nil {
		return nil, err
	}

	n := len(digits)
	u := n / 2

	a := append([]byte(nil), digits[:u]...)
	b := append([]byte(nil), digits[u:]...)

	for i := 0; i < ff1Rounds; i++ {
		// C = A + F(B) digit-wise; A, B = B, C
		c := f.roundFunction(i, radix, n, b, len(a))
		for j := range c {
			c[j] = byte((int(a[j]) + int(c[j])) % radix)
		}
		a, b = b, c
	}

	return append(a, b...), nil
}

// Decrypt inverts Encrypt.
func (f *FF1) Decrypt(digits []byte, radix int) ([]byte, error) {
	if err := validateDigits(digits, radix); err != nil {
		return nil, err
	}

	n := len(digits)
	u := n / 2

	a := append([]byte(nil), digits[:u]...)
	b := append([]byte(nil), digits[u:]...)

	for i := ff1Rounds - 1; i >= 0; i-- {
		// A is the previous B, so the previous A is B - F(A).
		c := f.roundFunction(i, radix, n, a, len(b))
		for j := range c {
			c[j] = byte((int(b[j]) - int(c[j]) + radix) % radix)
		}
		a, b = c, a
	}

	return append(a, b...), nil
}

// roundFunction returns m pseudorandom base-radix digits derived from the
// round number, the domain parameters, the tweak and the digits in b.
func (f *FF1) roundFunction(round, radix, n int, b []byte, m int) []byte {
	var p [aes.BlockSize]byte
	p[0], p[1], p[2] = 1, 2, 1
	p[5] = byte(radix)
	p[6] = ff1Rounds
	p[7] = byte(n / 2)
	binary.BigEndian.PutUint32(p[8:12], uint32(n))
	binary.BigEndian.PutUint32(p[12:16], uint32(len(f.tweak)))

	numB := numradixBytes(b, radix)

	// Q = tweak || 0^pad || round || NUM(B), a whole number of blocks
	qLen := len(f.tweak) + 1 + len(numB)
	pad := (aes.BlockSize - qLen%aes.BlockSize) % aes.BlockSize
	q := make([]byte, 0, qLen+pad)
	q = append(q, f.tweak...)
	q = append(q, make([]byte, pad)...)
	q = append(q, byte(round))
	q = append(q, numB...)

	r := f.cbcMAC(p[:], q)

	// Expand R to d bytes: S = R || E(R ^ [1]) || E(R ^ [2]) || ...
	d := 4*((m*bitLength(radix)+31)/32) + 4
	s := make([]byte, 0, d+aes.BlockSize)
	s = append(s, r...)
	var blk [aes.BlockSize]byte
	for j := uint64(1); len(s) < d; j++ {
		copy(blk[:], r)
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], j)
		for k := range ctr {
			blk[8+k] ^= ctr[k]
		}
		f.block.Encrypt(blk[:], blk[:])
		s = append(s, blk[:]...)
	}

	y := new(big.Int).SetBytes(s[:d])
	return numradixDigits(y, radix, m)
}

// cbcMAC computes AES-CBC-MAC over p || q. Both lengths must be multiples of
// the block size.
func (f *FF1) cbcMAC(p, q []byte) []byte {
	var x [aes.BlockSize]byte
	for _, data := range [][]byte{p, q} {
		for off := 0; off < len(data); off += aes.BlockSize {
			for k := 0; k < aes.BlockSize; k++ {
				x[k] ^= data[off+k]
			}
			f.block.Encrypt(x[:], x[:])
		}
	}
	return x[:]
}

func validateDigits(digits []byte, radix int) error {
	if radix < MinRadix || radix > MaxRadix {
		return fmt.Errorf("radix %d outside [%d, %d]", radix, MinRadix, MaxRadix)
	}

	n := len(digits)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 digits, got %d", ErrDomainTooSmall, n)
	}
	if n > maxInputLength {
		return fmt.Errorf("input too long: %d digits (maximum %d)", n, maxInputLength)
	}

	domain := 1
	for i := 0; i < n && domain < minDomainSize; i++ {
		domain *= radix
	}
	if domain < minDomainSize {
		return fmt.Errorf("%w: radix=%d, length=%d (minimum %d required)", ErrDomainTooSmall, radix, n, minDomainSize)
	}

	for i, d := range digits {
		if int(d) >= radix {
			return fmt.Errorf("%w: %d at position %d (radix %d)", ErrInvalidDigit, d, i, radix)
		}
	}
	return nil
}
