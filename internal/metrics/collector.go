// Package metrics exports radix pool statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/radixpool/mem/radix"
)

// Collector reads a PoolStats snapshot on every scrape. The pool is not safe
// for concurrent use, so the snapshot function must provide whatever
// synchronization the caller's setup needs.
type Collector struct {
	snapshot func() radix.PoolStats

	allocatedBytes   *prometheus.Desc
	deallocatedBytes *prometheus.Desc
	currentUsed      *prometheus.Desc
	peakUsed         *prometheus.Desc
	allocations      *prometheus.Desc
	deallocations    *prometheus.Desc
	cacheHits        *prometheus.Desc
	cacheMisses      *prometheus.Desc
	utilization      *prometheus.Desc
	hitRate          *prometheus.Desc
}

// NewCollector creates a collector whose metric names start with namespace
// (default "radix_pool").
func NewCollector(namespace string, constLabels prometheus.Labels, snapshot func() radix.PoolStats) *Collector {
	if namespace == "" {
		namespace = "radix_pool"
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, constLabels)
	}
	return &Collector{
		snapshot:         snapshot,
		allocatedBytes:   desc("allocated_bytes_total", "Bytes materialized by the backing allocator."),
		deallocatedBytes: desc("deallocated_bytes_total", "Requested bytes released back to the pool."),
		currentUsed:      desc("current_used_bytes", "Requested bytes currently held by callers."),
		peakUsed:         desc("peak_used_bytes", "Highest value current_used_bytes has reached."),
		allocations:      desc("allocations_total", "Allocate calls that succeeded."),
		deallocations:    desc("deallocations_total", "Deallocate calls."),
		cacheHits:        desc("cache_hits_total", "Allocations served from a free list."),
		cacheMisses:      desc("cache_misses_total", "Allocations that fell back to the backing allocator."),
		utilization:      desc("space_utilization_percent", "current_used_bytes as a percentage of allocated_bytes_total."),
		hitRate:          desc("cache_hit_rate_percent", "cache_hits_total as a percentage of all allocations."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocatedBytes
	ch <- c.deallocatedBytes
	ch <- c.currentUsed
	ch <- c.peakUsed
	ch <- c.allocations
	ch <- c.deallocations
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.utilization
	ch <- c.hitRate
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.snapshot()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}

	counter(c.allocatedBytes, s.TotalAllocated)
	counter(c.deallocatedBytes, s.TotalDeallocated)
	gauge(c.currentUsed, float64(s.CurrentUsed))
	gauge(c.peakUsed, float64(s.PeakUsed))
	counter(c.allocations, s.AllocationCount)
	counter(c.deallocations, s.DeallocationCount)
	counter(c.cacheHits, s.CacheHits)
	counter(c.cacheMisses, s.CacheMisses)
	gauge(c.utilization, s.SpaceUtilization())
	gauge(c.hitRate, s.CacheHitRate())
}

var _ prometheus.Collector = (*Collector)(nil)
