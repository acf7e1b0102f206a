package basen

import (
	"encoding/binary"
	"math/bits"

	"github.com/google/uuid"
)

// Unsigned is the set of fixed-width unsigned integers. Values are encoded as
// big-endian buffers of their natural size (1, 2, 4 or 8 bytes).
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// sizeOf returns the byte width of T.
func sizeOf[T Unsigned]() int {
	return bits.Len64(uint64(^T(0))) / 8
}

func putUint[T Unsigned](buf []byte, v T) []byte {
	u := uint64(v)
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(u)
		u >>= 8
	}
	return buf
}

func getUint[T Unsigned](buf []byte) T {
	var u uint64
	for _, b := range buf {
		u = u<<8 | uint64(b)
	}
	return T(u)
}

// EncodeUint returns the fixed-length encoding of v.
func EncodeUint[T Unsigned](a *Alphabet, v T) string {
	var buf [8]byte
	return a.EncodeFixed(putUint(buf[:sizeOf[T]()], v))
}

// DecodeUint decodes a fixed-length encoding of a T.
func DecodeUint[T Unsigned](a *Alphabet, s string) (T, error) {
	var buf [8]byte
	b := buf[:sizeOf[T]()]
	if err := a.DecodeFixedInto(b, s); err != nil {
		return 0, err
	}
	return getUint[T](b), nil
}

// EncodeUintMinimal returns the minimal encoding of v; zero encodes to "".
func EncodeUintMinimal[T Unsigned](a *Alphabet, v T) string {
	var buf [8]byte
	return a.EncodeMinimal(putUint(buf[:sizeOf[T]()], v))
}

// DecodeUintMinimal decodes a minimal (or zero-padded) encoding of a T.
func DecodeUintMinimal[T Unsigned](a *Alphabet, s string) (T, error) {
	var buf [8]byte
	b := buf[:sizeOf[T]()]
	if err := a.DecodeMinimalInto(b, s); err != nil {
		return 0, err
	}
	return getUint[T](b), nil
}

// Uint128 is a 128-bit unsigned integer.
type Uint128 struct {
	Hi, Lo uint64
}

// Bytes returns the big-endian representation of u.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.Hi)
	binary.BigEndian.PutUint64(b[8:], u.Lo)
	return b
}

// Uint128FromBytes is the inverse of Uint128.Bytes.
func Uint128FromBytes(b [16]byte) Uint128 {
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[:8]),
		Lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// EncodeUint128 returns the fixed-length encoding of u.
func EncodeUint128(a *Alphabet, u Uint128) string {
	b := u.Bytes()
	return a.EncodeFixed(b[:])
}

// DecodeUint128 decodes a fixed-length encoding of a Uint128.
func DecodeUint128(a *Alphabet, s string) (Uint128, error) {
	var b [16]byte
	if err := a.DecodeFixedInto(b[:], s); err != nil {
		return Uint128{}, err
	}
	return Uint128FromBytes(b), nil
}

// EncodeUUID returns the fixed-length encoding of a UUID's 16 bytes,
// e.g. 25 characters in Base36 or 22 in Base58.
func EncodeUUID(a *Alphabet, id uuid.UUID) string {
	return a.EncodeFixed(id[:])
}

// DecodeUUID decodes a fixed-length encoding of a UUID.
func DecodeUUID(a *Alphabet, s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := a.DecodeFixedInto(id[:], s); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
