package radix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		size int
		want Tier
	}{
		{1, TierTiny},
		{16, TierTiny},
		{17, TierSmall},
		{256, TierSmall},
		{257, TierMedium},
		{4096, TierMedium},
		{4097, TierLarge},
		{1 << 20, TierLarge},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.size), "TierFor(%d)", tt.size)
	}
}

func TestTier_ClassCounts(t *testing.T) {
	p := New(nil)
	assert.Len(t, p.tiny.nodes, 16)
	assert.Len(t, p.small.nodes, 60)
	assert.Len(t, p.medium.nodes, 240)

	assert.Equal(t, 1, p.tiny.nodes[0].size)
	assert.Equal(t, 16, p.tiny.nodes[15].size)
	assert.Equal(t, 20, p.small.nodes[0].size)
	assert.Equal(t, 256, p.small.nodes[59].size)
	assert.Equal(t, 272, p.medium.nodes[0].size)
	assert.Equal(t, 4096, p.medium.nodes[239].size)
}

func TestTier_IndexFormulas(t *testing.T) {
	p := New(nil)

	for size := 1; size <= TinyMax; size++ {
		require.Equal(t, size-1, p.tiny.index(size), "tiny size %d", size)
	}
	for size := TinyMax + 1; size <= SmallMax; size++ {
		rounded := (size + 3) &^ 3
		require.Equal(t, (rounded-17)/4, p.small.index(size), "small size %d", size)
	}
	for size := SmallMax + 1; size <= MediumMax; size++ {
		rounded := (size + 15) &^ 15
		require.Equal(t, (rounded-257)/16, p.medium.index(size), "medium size %d", size)
	}
}

func TestTier_EveryClassServesItsRange(t *testing.T) {
	p := New(nil)
	for _, tr := range []*tier{&p.tiny, &p.small, &p.medium} {
		lo := tr.base + 1
		hi := tr.base + tr.granularity*len(tr.nodes)
		for size := lo; size <= hi; size++ {
			node, ok := tr.classFor(size)
			require.True(t, ok, "%s size %d", tr.kind, size)
			require.GreaterOrEqual(t, node.size, size)
			require.Less(t, node.size-size, tr.granularity, "%s size %d wastes a whole granule", tr.kind, size)
			require.Equal(t, node.size, tr.physical(size))
		}
	}
}

func TestTier_OutOfRangeIsMiss(t *testing.T) {
	p := New(nil)
	_, ok := p.medium.classFor(MediumMax + 16)
	assert.False(t, ok)
	_, ok = p.tiny.classFor(TinyMax + 1)
	assert.False(t, ok)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "tiny", TierTiny.String())
	assert.Equal(t, "large", TierLarge.String())
	assert.Equal(t, "unknown", Tier(9).String())

	text, err := TierMedium.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "medium", string(text))

	var back Tier
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, TierMedium, back)
	require.Error(t, back.UnmarshalText([]byte("huge")))
}
