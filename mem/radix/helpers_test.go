package radix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustAlloc allocates size bytes or fails the test.
func mustAlloc(t testing.TB, p *Pool, size int) Block {
	t.Helper()
	b, err := p.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	require.Equal(t, size, b.Len())
	return b
}

// requireCounterInvariants checks the invariants that hold after any sequence
// of operations.
func requireCounterInvariants(t testing.TB, s PoolStats, allocs, frees uint64) {
	t.Helper()
	require.GreaterOrEqual(t, s.PeakUsed, s.CurrentUsed, "peak_used must bound current_used")
	require.Equal(t, allocs, s.AllocationCount, "allocation_count counts calls")
	require.Equal(t, frees, s.DeallocationCount, "deallocation_count counts calls")
	require.Equal(t, s.AllocationCount, s.CacheHits+s.CacheMisses)
}
