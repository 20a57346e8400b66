package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want int
	}{
		{1, 4, 4},
		{17, 4, 20},
		{20, 4, 20},
		{257, 16, 272},
		{4096, 16, 4096},
		{4097, 64, 4160},
		{0, 64, 0},
	}
	for _, tt := range tests {
		got, ok := AlignUp(tt.n, tt.align)
		require.True(t, ok)
		require.Equal(t, tt.want, got, "AlignUp(%d, %d)", tt.n, tt.align)
	}

	_, ok := AlignUp(math.MaxInt, 64)
	require.False(t, ok, "AlignUp should report overflow near MaxInt")
}

func TestPadded(t *testing.T) {
	total, err := Padded(100, 64)
	require.NoError(t, err)
	require.Equal(t, 163, total)

	_, err = Padded(100, 48)
	require.Error(t, err, "non power-of-two alignment must be rejected")

	_, err = Padded(-1, 8)
	require.Error(t, err)

	_, err = Padded(math.MaxInt, 2)
	require.Error(t, err)
}

func TestAlignedSlice(t *testing.T) {
	for _, align := range []int{1, 4, 16, 64} {
		total, err := Padded(100, align)
		require.NoError(t, err)

		raw := make([]byte, total)
		b, ok := AlignedSlice(raw, 100, align)
		require.True(t, ok)
		require.Len(t, b, 100)
		require.Equal(t, 100, cap(b))
		require.True(t, Aligned(b, align), "align=%d addr=%#x", align, Addr(b))
	}

	_, ok := AlignedSlice(make([]byte, 4), 8, 1)
	require.False(t, ok, "AlignedSlice should fail when raw is too short")
}

func TestAddr(t *testing.T) {
	require.Zero(t, Addr(nil))
	b := make([]byte, 8)
	require.Equal(t, Addr(b), Addr(b[:0]))
	require.NotEqual(t, Addr(b), Addr(b[1:]))
}
