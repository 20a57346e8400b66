package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/radixpool/mem/radix"
)

func TestCollector_Values(t *testing.T) {
	p := radix.New(nil)
	a, err := p.Allocate(64)
	require.NoError(t, err)
	p.Deallocate(a)
	_, err = p.Allocate(64)
	require.NoError(t, err)

	c := NewCollector("", nil, p.Stats)

	expected := `
# HELP radix_pool_cache_hits_total Allocations served from a free list.
# TYPE radix_pool_cache_hits_total counter
radix_pool_cache_hits_total 1
# HELP radix_pool_cache_misses_total Allocations that fell back to the backing allocator.
# TYPE radix_pool_cache_misses_total counter
radix_pool_cache_misses_total 1
# HELP radix_pool_current_used_bytes Requested bytes currently held by callers.
# TYPE radix_pool_current_used_bytes gauge
radix_pool_current_used_bytes 64
# HELP radix_pool_cache_hit_rate_percent cache_hits_total as a percentage of all allocations.
# TYPE radix_pool_cache_hit_rate_percent gauge
radix_pool_cache_hit_rate_percent 50
`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected),
		"radix_pool_cache_hits_total",
		"radix_pool_cache_misses_total",
		"radix_pool_current_used_bytes",
		"radix_pool_cache_hit_rate_percent",
	)
	require.NoError(t, err)
	assert.Equal(t, 10, testutil.CollectAndCount(c))
}

func TestCollector_ConstLabelsAndNamespace(t *testing.T) {
	p := radix.New(nil)
	c := NewCollector("compiler_mem", prometheus.Labels{"worker": "3"}, p.Stats)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 10)
	for _, mf := range families {
		assert.True(t, strings.HasPrefix(mf.GetName(), "compiler_mem_"), mf.GetName())
		require.Len(t, mf.GetMetric(), 1)
		labels := mf.GetMetric()[0].GetLabel()
		require.Len(t, labels, 1)
		assert.Equal(t, "worker", labels[0].GetName())
		assert.Equal(t, "3", labels[0].GetValue())
	}
}
