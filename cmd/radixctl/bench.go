package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/radixpool/internal/logger"
	"github.com/joshuapare/radixpool/internal/workload"
	"github.com/joshuapare/radixpool/mem/radix"
)

var (
	benchCycles  int
	benchSizes   []int
	benchWorkers int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchCycles, "cycles", 100_000, "Allocate/deallocate pairs per worker")
	cmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{8, 24, 64, 200, 1024, 8192}, "Request sizes, used in turn")
	cmd.Flags().IntVar(&benchWorkers, "workers", 1, "Concurrent workers, each with its own pool")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure alternating allocate/deallocate throughput",
		Long: `The bench command performs --cycles allocate/deallocate pairs, cycling
through the request sizes in --sizes. With --workers N, N goroutines run the
loop concurrently, each on a private pool.

Example:
  radixctl bench
  radixctl bench --cycles 1000000 --sizes 16,48,300
  radixctl bench --workers 8 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

// BenchReport is the JSON form of the bench command.
type BenchReport struct {
	Workers    int               `json:"workers"`
	Cycles     int               `json:"cycles"`
	Sizes      []int             `json:"sizes"`
	Elapsed    time.Duration     `json:"elapsed_ns"`
	OpsPerSec  float64           `json:"ops_per_sec"`
	RSS        uint64            `json:"rss_bytes,omitempty"`
	PerWorker  []radix.PoolStats `json:"per_worker"`
	Violations int               `json:"violations"`
}

func runBench() error {
	if benchWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", benchWorkers)
	}
	if benchCycles < 0 {
		return fmt.Errorf("--cycles must not be negative, got %d", benchCycles)
	}

	report := BenchReport{
		Workers:   benchWorkers,
		Cycles:    benchCycles,
		Sizes:     benchSizes,
		PerWorker: make([]radix.PoolStats, benchWorkers),
	}
	violations := make([]int, benchWorkers)

	var g errgroup.Group
	start := time.Now()
	for w := range benchWorkers {
		g.Go(func() error {
			pool, release := newPool()
			if err := workload.Cycles(pool, benchCycles, benchSizes); err != nil {
				release()
				return fmt.Errorf("worker %d: %w", w, err)
			}
			report.PerWorker[w] = pool.Stats()
			violations[w] = len(pool.Violations())
			return release()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	report.Elapsed = time.Since(start)
	for _, n := range violations {
		report.Violations += n
	}

	ops := 2 * uint64(benchCycles) * uint64(benchWorkers)
	if secs := report.Elapsed.Seconds(); secs > 0 {
		report.OpsPerSec = float64(ops) / secs
	}
	report.RSS = residentBytes()

	switch outFormat {
	case formatJSON:
		return printJSON(report)
	case formatProm:
		return printProm(report.PerWorker...)
	}

	printInfo("\nBenchmark: %d worker(s) x %s cycles, sizes %v\n",
		benchWorkers, formatNumber(benchCycles), benchSizes)
	printInfo("  Elapsed:     %s\n", report.Elapsed.Round(time.Microsecond))
	printInfo("  Operations:  %s\n", formatNumber(ops))
	printInfo("  Throughput:  %s ops/s\n", formatNumber(uint64(report.OpsPerSec)))
	if report.RSS > 0 {
		printInfo("  Process RSS: %s\n", formatBytes(report.RSS))
	}
	if report.Violations > 0 {
		printInfo("  Violations:  %d\n", report.Violations)
	}
	if benchWorkers == 1 {
		printInfo("\n")
		printPoolStats(report.PerWorker[0])
	}
	return nil
}

// residentBytes returns the process resident set size, or 0 when it cannot
// be read on this platform.
func residentBytes() uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debug("radixctl: process lookup failed", "error", err)
		return 0
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		logger.Debug("radixctl: memory info unavailable", "error", err)
		return 0
	}
	return mem.RSS
}
