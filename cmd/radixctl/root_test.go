package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/radixpool/internal/sysalloc"
)

// newFlagCmd returns a command carrying the persistent flags setup inspects.
func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().BoolVar(&debugMode, "debug", false, "")
	c.Flags().BoolVar(&useMmap, "mmap", false, "")
	c.Flags().StringVar(&maxBytes, "max-bytes", "", "")
	c.Flags().StringVar(&logLevel, "log-level", "", "")
	return c
}

func TestSetup_FlagsOverrideEnvironment(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("RADIX_DEBUG", "false")
	t.Setenv("RADIX_MAX_SYSTEM_BYTES", "100")

	c := newFlagCmd()
	require.NoError(t, c.Flags().Set("debug", "true"))
	require.NoError(t, c.Flags().Set("max-bytes", "1MiB"))
	require.NoError(t, setup(c, nil))

	require.NotNil(t, cfg)
	assert.True(t, cfg.Debug)
	assert.Equal(t, int64(1<<20), cfg.MaxSystemBytes)

	pool, release := newPool()
	defer func() { require.NoError(t, release()) }()
	_, err := pool.Allocate(1 << 20)
	require.NoError(t, err)
	_, err = pool.Allocate(1)
	require.ErrorIs(t, err, sysalloc.ErrExhausted)
}

func TestSetup_EnvironmentWithoutFlags(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("RADIX_MMAP_LARGE", "true")

	require.NoError(t, setup(newFlagCmd(), nil))
	assert.True(t, cfg.MmapLarge)
	assert.False(t, cfg.Debug)
}

func TestSetup_Rejects(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		resetFlags(t)
		outFormat = "yaml"
		require.Error(t, setup(newFlagCmd(), nil))
	})
	t.Run("max-bytes", func(t *testing.T) {
		resetFlags(t)
		t.Chdir(t.TempDir())
		c := newFlagCmd()
		require.NoError(t, c.Flags().Set("max-bytes", "plenty"))
		require.Error(t, setup(c, nil))
	})
	t.Run("log-level", func(t *testing.T) {
		resetFlags(t)
		t.Chdir(t.TempDir())
		c := newFlagCmd()
		require.NoError(t, c.Flags().Set("log-level", "loud"))
		require.Error(t, setup(c, nil))
	})
}
