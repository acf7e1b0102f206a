package subtle

import (
	"math/big"
)

// numradixBytes returns the numeric value of a base-radix digit string as a
// big-endian byte string of ceil(len(digits)*bitLength(radix)/8) bytes.
// This is NUM_radix(X) from NIST FF1, computed with the same accumulator as
// DecodeDigits; the buffer is always wide enough, so it cannot overflow.
func numradixBytes(digits []byte, radix int) []byte {
	out := make([]byte, (len(digits)*bitLength(radix)+7)/8)
	if err := DecodeDigits(digits, radix, out); err != nil {
		panic("subtle: numradix buffer too small: " + err.Error())
	}
	return out
}

// numradixDigits converts val mod radix^m to exactly m base-radix digits,
// most significant first. This is STR^m_radix(val) from NIST FF1.
func numradixDigits(val *big.Int, radix int, m int) []byte {
	result := make([]byte, m)
	radixBig := big.NewInt(int64(radix))
	temp := new(big.Int).Set(val)
	var remainder big.Int

	for i := m - 1; i >= 0; i-- {
		temp.DivMod(temp, radixBig, &remainder)
		result[i] = byte(remainder.Int64())
	}

	return result
}
