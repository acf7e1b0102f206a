package subtle

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, keyHex string) []byte {
	t.Helper()
	key, err := hex.DecodeString(keyHex)
	require.NoError(t, err)
	return key
}

func TestNewFF1_KeySizes(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		_, err := NewFF1(make([]byte, size), nil)
		assert.NoError(t, err, "size %d", size)
	}
	for _, size := range []int{0, 8, 15, 20, 33} {
		_, err := NewFF1(make([]byte, size), nil)
		assert.ErrorIs(t, err, ErrKeySize, "size %d", size)
	}
}

func TestFF1_RoundTrip(t *testing.T) {
	// NIST SP 800-38G sample keys
	keys := []string{
		"2B7E151628AED2A6ABF7158809CF4F3C",
		"2B7E151628AED2A6ABF7158809CF4F3CEF4359D8D580AA4F",
		"2B7E151628AED2A6ABF7158809CF4F3CEF4359D8D580AA4F7F036D6F04FC6A94",
	}
	inputs := []struct {
		radix  int
		digits []byte
	}{
		{10, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{10, []byte{9, 9, 9}},
		{36, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}},
		{58, []byte{57, 57, 57, 57, 57, 57, 57, 57, 57, 57, 57}},
		{2, []byte{1, 0, 1, 1, 0, 0, 1, 0}},
		{255, []byte{254, 0, 17}},
	}

	for _, k := range keys {
		f, err := NewFF1(testKey(t, k), []byte("tenant-1234"))
		require.NoError(t, err)

		for _, in := range inputs {
			t.Run(fmt.Sprintf("%d/radix%d/len%d", len(k)/2, in.radix, len(in.digits)), func(t *testing.T) {
				ct, err := f.Encrypt(in.digits, in.radix)
				require.NoError(t, err)
				require.Len(t, ct, len(in.digits))
				for _, d := range ct {
					require.Less(t, int(d), in.radix)
				}

				pt, err := f.Decrypt(ct, in.radix)
				require.NoError(t, err)
				assert.Equal(t, in.digits, pt)
			})
		}
	}
}

func TestFF1_DoesNotModifyInput(t *testing.T) {
	f, err := NewFF1(make([]byte, 16), nil)
	require.NoError(t, err)

	in := []byte{1, 2, 3, 4, 5, 6}
	orig := append([]byte(nil), in...)
	_, err = f.Encrypt(in, 10)
	require.NoError(t, err)
	assert.Equal(t, orig, in)
}

// TestFF1_Bijectivity exhaustively checks a 4-digit decimal domain.
func TestFF1_Bijectivity(t *testing.T) {
	f, err := NewFF1(testKey(t, "2B7E151628AED2A6ABF7158809CF4F3C"), []byte("bijectivity-test"))
	require.NoError(t, err)

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		in := []byte{byte(i / 1000), byte(i / 100 % 10), byte(i / 10 % 10), byte(i % 10)}
		ct, err := f.Encrypt(in, 10)
		require.NoError(t, err)
		require.False(t, seen[string(ct)], "collision for %v", in)
		seen[string(ct)] = true
	}
	assert.Len(t, seen, 10000)
}

func TestFF1_Deterministic(t *testing.T) {
	f, err := NewFF1(make([]byte, 32), []byte("t"))
	require.NoError(t, err)

	in := []byte{3, 1, 4, 1, 5, 9, 2, 6}
	a, err := f.Encrypt(in, 10)
	require.NoError(t, err)
	b, err := f.Encrypt(in, 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFF1_TweakAndKeySensitivity(t *testing.T) {
	in := bytes.Repeat([]byte{7}, 16)

	f1, err := NewFF1(make([]byte, 16), []byte("tweak-a"))
	require.NoError(t, err)
	f2, err := NewFF1(make([]byte, 16), []byte("tweak-b"))
	require.NoError(t, err)
	key := make([]byte, 16)
	key[0] = 1
	f3, err := NewFF1(key, []byte("tweak-a"))
	require.NoError(t, err)

	c1, err := f1.Encrypt(in, 10)
	require.NoError(t, err)
	c2, err := f2.Encrypt(in, 10)
	require.NoError(t, err)
	c3, err := f3.Encrypt(in, 10)
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2)
	assert.NotEqual(t, c1, c3)
}

func TestFF1_Validation(t *testing.T) {
	f, err := NewFF1(make([]byte, 16), nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		digits []byte
		radix  int
		target error
	}{
		{"single digit", []byte{5}, 10, ErrDomainTooSmall},
		{"empty", nil, 58, ErrDomainTooSmall},
		{"tiny domain", []byte{1, 0, 1, 1, 0, 1}, 2, ErrDomainTooSmall},
		{"digit out of range", []byte{1, 2, 10}, 10, ErrInvalidDigit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Encrypt(tc.digits, tc.radix)
			assert.ErrorIs(t, err, tc.target)
			_, err = f.Decrypt(tc.digits, tc.radix)
			assert.ErrorIs(t, err, tc.target)
		})
	}

	_, err = f.Encrypt([]byte{1, 2, 3}, 1)
	assert.Error(t, err)
}

func BenchmarkFF1Encrypt(b *testing.B) {
	f, err := NewFF1(make([]byte, 32), []byte("benchmark-tweak"))
	if err != nil {
		b.Fatal(err)
	}
	in := bytes.Repeat([]byte{5}, 11)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Encrypt(in, 58); err != nil {
			b.Fatal(err)
		}
	}
}
