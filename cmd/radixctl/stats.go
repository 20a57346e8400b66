package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/radixpool/internal/workload"
	"github.com/joshuapare/radixpool/mem/lifetime"
	"github.com/joshuapare/radixpool/mem/radix"
)

var (
	statsFunctions int
	statsSeed      uint64
	statsKeep      bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsFunctions, "functions", workload.DefaultConfig.Functions, "Function bodies to compile")
	cmd.Flags().Uint64Var(&statsSeed, "seed", workload.DefaultConfig.Seed, "Workload seed")
	cmd.Flags().BoolVar(&statsKeep, "keep-module", false, "Leave module-lifetime blocks allocated")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a compilation workload and show pool statistics",
		Long: `The stats command compiles a synthetic translation unit through a
lifetime pool, releasing each function body's allocations when the body is
done, and prints the pool counters.

Example:
  radixctl stats
  radixctl stats --functions 1000 --seed 7
  radixctl stats --format json
  radixctl stats --format prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

// StatsReport is the JSON form of the stats command.
type StatsReport struct {
	Workload         workload.Result    `json:"workload"`
	Stats            radix.PoolStats    `json:"stats"`
	SpaceUtilization float64            `json:"space_utilization"`
	CacheHitRate     float64            `json:"cache_hit_rate"`
	FreeBlocks       map[radix.Tier]int `json:"free_blocks"`
	Violations       []string           `json:"violations,omitempty"`
}

func runStats() error {
	pool, res, release, err := runWorkload(workloadConfig(statsKeep))
	if err != nil {
		return err
	}
	defer release()

	return reportStats(pool, res)
}

func workloadConfig(keepModule bool) workload.Config {
	wc := workload.DefaultConfig
	wc.Functions = statsFunctions
	wc.Seed = statsSeed
	wc.KeepModule = keepModule
	return wc
}

// runWorkload builds a pool and compiles wc through it.
func runWorkload(wc workload.Config) (*radix.Pool, workload.Result, func() error, error) {
	pool, release := newPool()
	lp := lifetime.New[string](pool)

	printVerbose("Compiling %d functions (seed %d)\n", wc.Functions, wc.Seed)
	res, err := workload.Run(lp, wc)
	if err != nil {
		release()
		return nil, res, nil, fmt.Errorf("workload failed after %d allocations: %w", res.Allocations, err)
	}
	printVerbose("Done: %s allocations, %s requested\n", formatNumber(res.Allocations), formatBytes(res.Bytes))
	return pool, res, release, nil
}

func reportStats(pool *radix.Pool, res workload.Result) error {
	s := pool.Stats()
	var violations []string
	for _, v := range pool.Violations() {
		violations = append(violations, v.Error())
	}

	switch outFormat {
	case formatJSON:
		return printJSON(StatsReport{
			Workload:         res,
			Stats:            s,
			SpaceUtilization: s.SpaceUtilization(),
			CacheHitRate:     s.CacheHitRate(),
			FreeBlocks:       pool.FreeBlocks(),
			Violations:       violations,
		})
	case formatProm:
		return printProm(s)
	}

	printInfo("\nRadix Pool: %s functions, %s allocations\n", formatNumber(res.Functions), formatNumber(res.Allocations))
	printInfo("%s\n\n", strings.Repeat("=", 40))
	printPoolStats(s)

	free := pool.FreeBlocks()
	printInfo("\nCached Blocks:\n")
	for _, t := range []radix.Tier{radix.TierTiny, radix.TierSmall, radix.TierMedium, radix.TierLarge} {
		printInfo("  %-7s %s\n", t.String()+":", formatNumber(free[t]))
	}
	if len(violations) > 0 {
		printInfo("\nViolations:\n")
		for _, v := range violations {
			printInfo("  %s\n", v)
		}
	}
	return nil
}
