package main

import (
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/radixpool/internal/metrics"
	"github.com/joshuapare/radixpool/mem/radix"
)

var numbers = message.NewPrinter(language.English)

func formatBytes(n uint64) string {
	return humanize.IBytes(n)
}

func formatNumber[T int | int64 | uint64](n T) string {
	return numbers.Sprintf("%d", n)
}

func formatPercent(f float64) string {
	return numbers.Sprintf("%.2f%%", f)
}

// printProm writes one snapshot per pool in the Prometheus text exposition
// format. Each pool is labeled with its worker index.
func printProm(snapshots ...radix.PoolStats) error {
	reg := prometheus.NewRegistry()
	for i, s := range snapshots {
		labels := prometheus.Labels{"worker": strconv.Itoa(i)}
		reg.MustRegister(metrics.NewCollector("", labels, func() radix.PoolStats { return s }))
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}

// printPoolStats prints the counters of one pool as an indented text block.
func printPoolStats(s radix.PoolStats) {
	printInfo("Pool Statistics:\n")
	printInfo("  Allocated (system): %s (%s bytes)\n", formatBytes(s.TotalAllocated), formatNumber(s.TotalAllocated))
	printInfo("  Deallocated:        %s (%s bytes)\n", formatBytes(s.TotalDeallocated), formatNumber(s.TotalDeallocated))
	printInfo("  Current Used:       %s\n", formatBytes(s.CurrentUsed))
	printInfo("  Peak Used:          %s\n", formatBytes(s.PeakUsed))
	printInfo("  Allocations:        %s\n", formatNumber(s.AllocationCount))
	printInfo("  Deallocations:      %s\n", formatNumber(s.DeallocationCount))
	printInfo("  Cache Hits:         %s\n", formatNumber(s.CacheHits))
	printInfo("  Cache Misses:       %s\n", formatNumber(s.CacheMisses))
	printInfo("  Hit Rate:           %s\n", formatPercent(s.CacheHitRate()))
	printInfo("  Space Utilization:  %s\n", formatPercent(s.SpaceUtilization()))
}
