// Package config loads radixctl settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/joshuapare/radixpool/internal/logger"
	"github.com/joshuapare/radixpool/internal/sysalloc"
	"github.com/joshuapare/radixpool/mem/radix"
)

// DefaultEnvFile is read when Load is given no file. A missing default file
// is not an error.
const DefaultEnvFile = ".env"

// Config holds pool and logging settings.
// Priority: environment > .env file > defaults.
type Config struct {
	// Pool
	Debug          bool  `env:"RADIX_DEBUG"`
	LogAlloc       bool  `env:"RADIX_LOG_ALLOC"`
	MaxSystemBytes int64 `env:"RADIX_MAX_SYSTEM_BYTES" envDefault:"0"` // 0 = unlimited
	MmapLarge      bool  `env:"RADIX_MMAP_LARGE"`

	// Logging
	LogLevel  string `env:"RADIX_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RADIX_LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"RADIX_LOG_DIR"`
}

// Load reads envFile (DefaultEnvFile when empty) into the process
// environment without overriding variables already set, then parses the
// environment.
func Load(envFile string) (*Config, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if c.MaxSystemBytes < 0 {
		return fmt.Errorf("config: RADIX_MAX_SYSTEM_BYTES must be >= 0, got %d", c.MaxSystemBytes)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: RADIX_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: RADIX_LOG_FORMAT must be text or json (got: %s)", c.LogFormat)
	}
	return nil
}

// PoolOptions builds radix options from the configuration. The returned
// release function unmaps any memory the backing allocator mapped and must
// only be called once no block from the pool is in use.
func (c *Config) PoolOptions() (radix.Options, func() error) {
	var (
		backing radix.Backing = sysalloc.Heap{}
		release               = func() error { return nil }
	)
	if c.MmapLarge {
		m := sysalloc.NewMmap()
		backing = m
		release = m.Release
	}
	if c.MaxSystemBytes > 0 {
		backing = sysalloc.NewBudget(backing, c.MaxSystemBytes)
	}
	return radix.Options{
		Backing:  backing,
		Debug:    c.Debug,
		LogAlloc: c.LogAlloc,
	}, release
}

// LoggerOptions builds logger options. Logging is enabled when verbose is
// set or allocation logging was requested.
func (c *Config) LoggerOptions(verbose bool) logger.Options {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		level = 0
	}
	if c.LogAlloc {
		level = min(level, slog.LevelDebug)
	}
	return logger.Options{
		Enabled: verbose || c.LogAlloc,
		Format:  strings.ToLower(c.LogFormat),
		Level:   level,
		LogDir:  c.LogDir,
	}
}
