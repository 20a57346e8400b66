package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/radixpool/internal/workload"
	"github.com/joshuapare/radixpool/mem/radix"
)

var (
	classesAll  bool
	classesKeep bool
)

func init() {
	cmd := newClassesCmd()
	cmd.Flags().BoolVar(&classesAll, "table", false, "Print the static class table instead of running a workload")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Show per-class occupancy after a workload",
		Long: `The classes command runs the stats workload (with the module lifetime
kept open) and lists every size class that holds cached or
outstanding blocks.

Example:
  radixctl classes
  radixctl classes --keep-module=false
  radixctl classes --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
	cmd.Flags().IntVar(&statsFunctions, "functions", workload.DefaultConfig.Functions, "Function bodies to compile")
	cmd.Flags().Uint64Var(&statsSeed, "seed", workload.DefaultConfig.Seed, "Workload seed")
	cmd.Flags().BoolVar(&classesKeep, "keep-module", true, "Leave module-lifetime blocks allocated")
	return cmd
}

// ClassTier summarizes one tier's geometry.
type ClassTier struct {
	Tier        radix.Tier `json:"tier"`
	Min         int        `json:"min"`
	Max         int        `json:"max"`
	Granularity int        `json:"granularity"`
	Classes     int        `json:"classes"`
}

var classTable = []ClassTier{
	{radix.TierTiny, 1, radix.TinyMax, 1, radix.TinyMax},
	{radix.TierSmall, radix.TinyMax + 1, radix.SmallMax, 4, (radix.SmallMax - radix.TinyMax) / 4},
	{radix.TierMedium, radix.SmallMax + 1, radix.MediumMax, 16, (radix.MediumMax - radix.SmallMax) / 16},
	{radix.TierLarge, radix.MediumMax + 1, 0, 64, 0},
}

func runClasses() error {
	if outFormat == formatProm {
		return fmt.Errorf("classes: unsupported format %q (want text or json)", outFormat)
	}
	if classesAll {
		return printClassTable()
	}

	pool, _, release, err := runWorkload(workloadConfig(classesKeep))
	if err != nil {
		return err
	}
	defer release()

	classes := pool.Classes()
	if outFormat == formatJSON {
		return printJSON(classes)
	}

	printInfo("\n%-7s %10s %10s %10s\n", "Tier", "Size", "Free", "In Use")
	printInfo("%s\n", strings.Repeat("-", 40))
	for _, c := range classes {
		printInfo("%-7s %10s %10s %10s\n", c.Tier, formatNumber(c.Size), formatNumber(c.Free), formatNumber(c.Allocated))
	}
	printInfo("\n%s classes with activity\n", formatNumber(len(classes)))
	return nil
}

func printClassTable() error {
	if outFormat == formatJSON {
		return printJSON(classTable)
	}
	printInfo("\n%-7s %10s %10s %12s %8s\n", "Tier", "Min", "Max", "Granularity", "Classes")
	printInfo("%s\n", strings.Repeat("-", 51))
	for _, t := range classTable {
		hi, n := formatNumber(t.Max), formatNumber(t.Classes)
		if t.Tier == radix.TierLarge {
			hi, n = "-", "unbounded"
		}
		printInfo("%-7s %10s %10s %12d %8s\n", t.Tier, formatNumber(t.Min), hi, t.Granularity, n)
	}
	return nil
}
