package subtle

import (
	"bytes"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDigits(t *testing.T) {
	tests := []struct {
		name  string
		src   []byte
		radix int
		width int
		want  []byte
	}{
		{"zero padded", []byte{0}, 10, 3, []byte{0, 0, 0}},
		{"zero unpadded", []byte{0, 0}, 10, 0, []byte{}},
		{"255 decimal", []byte{0xFF}, 10, 3, []byte{2, 5, 5}},
		{"256 decimal", []byte{0x01, 0x00}, 10, 0, []byte{2, 5, 6}},
		{"grows past initial width", []byte{0xFF, 0xFF}, 16, 2, []byte{15, 15, 15, 15}},
		{"binary", []byte{0x05}, 2, 8, []byte{0, 0, 0, 0, 0, 1, 0, 1}},
		{"radix 255", []byte{0x01, 0x00}, 255, 0, []byte{1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeDigits(tc.src, tc.radix, make([]byte, tc.width))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeDigits(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		dst := make([]byte, 2)
		require.NoError(t, DecodeDigits([]byte{2, 5, 6}, 10, dst))
		assert.Equal(t, []byte{0x01, 0x00}, dst)
	})

	t.Run("leading zeros", func(t *testing.T) {
		dst := make([]byte, 1)
		require.NoError(t, DecodeDigits([]byte{0, 0, 0, 0, 7}, 10, dst))
		assert.Equal(t, []byte{7}, dst)
	})

	t.Run("empty is zero", func(t *testing.T) {
		dst := []byte{9, 9, 9}
		require.NoError(t, DecodeDigits(nil, 58, dst))
		assert.Equal(t, []byte{0, 0, 0}, dst)
	})

	t.Run("overflow", func(t *testing.T) {
		dst := make([]byte, 1)
		err := DecodeDigits([]byte{2, 5, 6}, 10, dst)
		assert.ErrorIs(t, err, ErrOverflow)
		assert.Equal(t, []byte{0}, dst)
	})

	t.Run("max fits", func(t *testing.T) {
		dst := make([]byte, 1)
		require.NoError(t, DecodeDigits([]byte{2, 5, 5}, 10, dst))
		assert.Equal(t, []byte{0xFF}, dst)
	})

	t.Run("digit out of range", func(t *testing.T) {
		dst := make([]byte, 4)
		err := DecodeDigits([]byte{1, 10}, 10, dst)
		assert.ErrorIs(t, err, ErrInvalidDigit)

		var de *DigitError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 1, de.Pos)
		assert.Equal(t, byte(10), de.Digit)
	})

	t.Run("first failure wins", func(t *testing.T) {
		dst := []byte{7}
		err := DecodeDigits([]byte{9, 9, 9, 0xFF}, 10, dst)
		assert.ErrorIs(t, err, ErrOverflow)
		assert.NotErrorIs(t, err, ErrInvalidDigit)
		assert.Equal(t, []byte{0}, dst)

		err = DecodeDigits([]byte{0xFF, 9, 9, 9}, 10, dst)
		assert.ErrorIs(t, err, ErrInvalidDigit)
	})

	t.Run("zero size accepts only zeros", func(t *testing.T) {
		require.NoError(t, DecodeDigits([]byte{0, 0}, 10, nil))
		assert.ErrorIs(t, DecodeDigits([]byte{1}, 10, nil), ErrOverflow)
	})
}

func TestWidth(t *testing.T) {
	tests := []struct {
		size, radix, want int
	}{
		{0, 10, 0},
		{1, 10, 3},
		{1, 16, 2},
		{1, 2, 8},
		{2, 10, 5},
		{4, 10, 10},
		{8, 10, 20},
		{8, 16, 16},
		{8, 36, 13},
		{8, 58, 11},
		{8, 62, 11},
		{8, 64, 11},
		{16, 36, 25},
		{16, 16, 32},
		{64, 58, 88},
	}

	for _, tc := range tests {
		got := Width(tc.size, tc.radix)
		assert.Equal(t, tc.want, got, "size=%d radix=%d", tc.size, tc.radix)
		assert.LessOrEqual(t, got, UpperBound(tc.size, tc.radix))
	}
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, 22, UpperBound(8, 10))
	assert.Equal(t, 16, UpperBound(8, 16))
	assert.Equal(t, 64, UpperBound(8, 2))
	assert.Equal(t, 10, UpperBound(8, 255))
	assert.Equal(t, 0, UpperBound(0, 58))
}

func TestInvalidRadixPanics(t *testing.T) {
	assert.Panics(t, func() { EncodeDigits([]byte{1}, 1, nil) })
	assert.Panics(t, func() { _ = DecodeDigits([]byte{1}, 256, make([]byte, 1)) })
	assert.Panics(t, func() { Width(8, 0) })
}

func TestTrimLeadingZeros(t *testing.T) {
	assert.Equal(t, []byte{1, 0}, TrimLeadingZeros([]byte{0, 0, 1, 0}))
	assert.Empty(t, TrimLeadingZeros([]byte{0, 0, 0}))
	assert.Empty(t, TrimLeadingZeros(nil))
}

// TestDigitsAgainstBigInt cross-checks both directions against math/big.
func TestDigitsAgainstBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	radixes := []int{2, 3, 7, 10, 16, 36, 58, 62, 64, 100, 128, 255}

	for _, radix := range radixes {
		for _, size := range []int{1, 3, 8, 16, 33} {
			src := make([]byte, size)
			rng.Read(src)

			digits := EncodeDigits(src, radix, make([]byte, Width(size, radix)))
			require.Len(t, digits, Width(size, radix))

			want := new(big.Int).SetBytes(src)
			got := new(big.Int)
			r := big.NewInt(int64(radix))
			for _, d := range digits {
				got.Mul(got, r)
				got.Add(got, big.NewInt(int64(d)))
			}
			require.Equal(t, 0, want.Cmp(got), "radix=%d size=%d", radix, size)

			back := make([]byte, size)
			require.NoError(t, DecodeDigits(digits, radix, back))
			require.True(t, bytes.Equal(src, back), "radix=%d size=%d", radix, size)
		}
	}
}

func BenchmarkEncodeDigits(b *testing.B) {
	src := bytes.Repeat([]byte{0xA5}, 32)
	width := Width(len(src), 58)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeDigits(src, 58, make([]byte, width))
	}
}

func BenchmarkDecodeDigits(b *testing.B) {
	src := bytes.Repeat([]byte{0xA5}, 32)
	digits := EncodeDigits(src, 58, make([]byte, Width(len(src), 58)))
	dst := make([]byte, len(src))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := DecodeDigits(digits, 58, dst); err != nil {
			b.Fatal(err)
		}
	}
}
