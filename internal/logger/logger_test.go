package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	require.NoError(t, Init(Options{}))
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, L.Enabled(t.Context(), level), level.String())
	}
}

func TestInit_ReinitClosesLogFile(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	require.NoError(t, Init(Options{Enabled: true, LogDir: t.TempDir()}))
	first := file
	require.NotNil(t, first)

	require.NoError(t, Init(Options{Enabled: true, LogDir: t.TempDir()}))
	require.NotNil(t, file)
	assert.NotSame(t, first, file)

	_, err := first.WriteString("late\n")
	require.ErrorIs(t, err, os.ErrClosed)

	require.NoError(t, Init(Options{}))
	assert.Nil(t, file)
}

func TestInit_JSONWriter(t *testing.T) {
	t.Cleanup(func() { _ = Init(Options{}) })

	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Format: "json", Level: slog.LevelDebug, Writer: &out}))

	Debug("pool miss", "size", 64)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "pool miss", rec["msg"])
	assert.Equal(t, float64(64), rec["size"])
}

func TestInit_LevelFilters(t *testing.T) {
	t.Cleanup(func() { _ = Init(Options{}) })

	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelWarn, Writer: &out}))

	Info("hidden")
	Warn("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestInit_UnknownFormat(t *testing.T) {
	err := Init(Options{Enabled: true, Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestInit_LogDirRetention(t *testing.T) {
	t.Cleanup(func() { _ = Init(Options{}) })

	dir := t.TempDir()
	stale := filepath.Join(dir, logPrefix+time.Now().AddDate(0, 0, -(retentionDays+5)).Format("2006-01-02")+logSuffix)
	require.NoError(t, os.WriteFile(stale, []byte("old\n"), 0o644))
	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, nil, 0o644))

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	Info("hello")

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale log should be removed")
	_, err = os.Stat(unrelated)
	assert.NoError(t, err, "unrelated files are left alone")

	today := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(today)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
