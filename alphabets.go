package basen

import (
	"sort"
	"strings"
)

// Predefined alphabets.
var (
	// Base10 is decimal. Characters: 0-9
	Base10 = MustAlphabet("0123456789")

	// Base16 is lower-case hexadecimal. Characters: 0-9 a-f
	Base16 = MustAlphabet("0123456789abcdef")

	// Base36 characters: 0-9 a-z
	Base36 = MustAlphabet("0123456789abcdefghijklmnopqrstuvwxyz")

	// Base58 is the Bitcoin alphabet. Characters: 0-9 A-Z a-z except 0 I O l
	Base58 = MustAlphabet("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz")

	// Base62 characters: 0-9 A-Z a-z
	Base62 = MustAlphabet("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

	// Base64Std uses the RFC 4648 standard characters as radix-64 digits.
	// It is a positional encoding, not RFC 4648 base64.
	Base64Std = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

	// Base64URL uses the RFC 4648 URL-safe characters as radix-64 digits.
	Base64URL = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
)

var predefined = map[string]*Alphabet{
	"base10":    Base10,
	"decimal":   Base10,
	"base16":    Base16,
	"hex":       Base16,
	"base36":    Base36,
	"base58":    Base58,
	"base62":    Base62,
	"base64":    Base64Std,
	"base64url": Base64URL,
}

// Lookup returns the predefined alphabet registered under name. Names are
// case-insensitive.
func Lookup(name string) (*Alphabet, bool) {
	a, ok := predefined[strings.ToLower(name)]
	return a, ok
}

// Names returns the names accepted by Lookup in sorted order.
func Names() []string {
	names := make([]string, 0, len(predefined))
	for name := range predefined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
