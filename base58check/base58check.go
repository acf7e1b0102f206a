// Package base58check implements the Base58Check encoding used for Bitcoin
// addresses and keys: a version byte, a payload and a four byte double
// SHA-256 checksum, written in the Base58 alphabet with one '1' per leading
// zero byte.
package base58check

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160"

	"github.com/vdparikh/basen"
)

const checksumLen = 4

// Common version bytes.
const (
	VersionP2PKH      = byte(0x00)
	VersionP2SH       = byte(0x05)
	VersionPrivateKey = byte(0x80)
)

var (
	// ErrChecksum is returned when the checksum does not match the payload.
	ErrChecksum = errors.New("base58check: checksum mismatch")

	// ErrInvalidFormat is returned for strings that are not canonical
	// Base58Check encodings of the expected length.
	ErrInvalidFormat = errors.New("base58check: invalid format")
)

// Encode returns the Base58Check encoding of version and payload.
func Encode(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+checksumLen)
	buf = append(buf, version)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)

	zeros := 0
	for zeros < len(buf) && buf[zeros] == 0 {
		zeros++
	}
	return strings.Repeat(string(basen.Base58.Zero()), zeros) + basen.Base58.EncodeMinimal(buf)
}

// Decode parses a Base58Check string carrying a payloadLen-byte payload.
func Decode(s string, payloadLen int) (version byte, payload []byte, err error) {
	if payloadLen < 0 {
		return 0, nil, fmt.Errorf("%w: negative payload length %d", ErrInvalidFormat, payloadLen)
	}

	buf, err := basen.Base58.DecodeMinimal(s, 1+payloadLen+checksumLen)
	if err != nil {
		if errors.Is(err, basen.ErrOverflow) {
			return 0, nil, fmt.Errorf("%w: too long for a %d byte payload", ErrInvalidFormat, payloadLen)
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	body, sum := buf[:len(buf)-checksumLen], buf[len(buf)-checksumLen:]
	if !bytes.Equal(checksum(body), sum) {
		return 0, nil, ErrChecksum
	}

	// Leading '1' characters must match leading zero bytes exactly.
	if Encode(body[0], body[1:]) != s {
		return 0, nil, fmt.Errorf("%w: non-canonical leading zeros", ErrInvalidFormat)
	}
	return body[0], body[1:], nil
}

// Hash160 returns RIPEMD-160(SHA-256(b)).
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

// EncodeAddress returns the address of a public key: the Base58Check encoding
// of its Hash160 under version.
func EncodeAddress(version byte, pubKey []byte) string {
	return Encode(version, Hash160(pubKey))
}

// DecodeAddress parses an address into its version byte and Hash160.
func DecodeAddress(addr string) (version byte, hash160 []byte, err error) {
	return Decode(addr, ripemd160.Size)
}

// IsValidAddress reports whether addr is a well-formed address.
func IsValidAddress(addr string) bool {
	_, _, err := DecodeAddress(addr)
	return err == nil
}

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}
