package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/radixpool/internal/config"
	"github.com/joshuapare/radixpool/internal/logger"
	"github.com/joshuapare/radixpool/mem/radix"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatProm = "prom"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	outFormat string
	envFile   string
	debugMode bool
	useMmap   bool
	maxBytes  string
	logLevel  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "radixctl",
	Short: "Exercise and inspect the radix memory pool",
	Long: `radixctl runs compiler-shaped workloads against the radix memory pool
and reports allocation statistics, per-class occupancy and throughput.

Settings are read from RADIX_* environment variables and an optional .env
file; flags override both.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().
		StringVarP(&outFormat, "format", "o", formatText, "Output format: text, json or prom")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read settings from this file (default .env if present)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Detect double frees and foreign blocks")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Back page-sized and larger blocks with anonymous mappings")
	rootCmd.PersistentFlags().
		StringVar(&maxBytes, "max-bytes", "", "Cap bytes requested from the system, e.g. 64MiB")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and initializes logging.
func setup(cmd *cobra.Command, _ []string) error {
	switch outFormat {
	case formatText, formatJSON, formatProm:
	default:
		return fmt.Errorf("unknown format %q (want text, json or prom)", outFormat)
	}

	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		c.Debug = debugMode
	}
	if flags.Changed("mmap") {
		c.MmapLarge = useMmap
	}
	if flags.Changed("max-bytes") {
		n, err := humanize.ParseBytes(maxBytes)
		if err != nil {
			return fmt.Errorf("invalid --max-bytes: %w", err)
		}
		c.MaxSystemBytes = int64(n)
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	if err := logger.Init(c.LoggerOptions(verbose)); err != nil {
		return err
	}
	logger.Debug("radixctl: configuration loaded",
		"debug", c.Debug, "mmap", c.MmapLarge, "max_system_bytes", c.MaxSystemBytes)
	return nil
}

// newPool builds a pool from the loaded configuration, or from defaults when
// setup has not run.
func newPool() (*radix.Pool, func() error) {
	c := cfg
	if c == nil {
		c = &config.Config{LogLevel: "info", LogFormat: "text"}
	}
	opts, release := c.PoolOptions()
	return radix.New(&opts), release
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
