package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/toolbox/pkg/toolbox/config"
	tberrors "github.com/randalmurphal/toolbox/pkg/toolbox/errors"
	"github.com/randalmurphal/toolbox/pkg/toolbox/journal"
)

const settingsYAML = `
task_name: FileInfo
log_level: debug
journal: memory
metrics: true
retry:
  max_attempts: 3
  initial_backoff: 5ms
  max_backoff: 40ms
`

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
	assert.Equal(t, tberrors.NoRetry, s.Retry())

	store, err := s.OpenJournal()
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestLoadSettingsFromFile(t *testing.T) {
	s, err := config.LoadSettings(writeSettings(t, settingsYAML))
	require.NoError(t, err)

	assert.Equal(t, "FileInfo", s.TaskName)
	assert.Equal(t, config.JournalMemory, s.Journal)
	assert.True(t, s.Metrics)
	assert.False(t, s.Tracing)

	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	retry := s.Retry()
	assert.Equal(t, 3, retry.MaxAttempts)
	assert.Equal(t, 5*time.Millisecond, retry.InitialBackoff)
	assert.Equal(t, 40*time.Millisecond, retry.MaxBackoff)

	store, err := s.OpenJournal()
	require.NoError(t, err)
	assert.IsType(t, &journal.MemoryStore{}, store)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	t.Setenv("TOOLBOX_TASK_NAME", "Paint")
	t.Setenv("TOOLBOX_TRACING", "true")
	t.Setenv("TOOLBOX_RETRY_ATTEMPTS", "5")
	t.Setenv("TOOLBOX_RETRY_BACKOFF", "1ms")

	s, err := config.LoadSettings(writeSettings(t, settingsYAML))
	require.NoError(t, err)

	assert.Equal(t, "Paint", s.TaskName)
	assert.True(t, s.Tracing)
	assert.Equal(t, 5, s.RetryAttempts)
	assert.Equal(t, time.Millisecond, s.RetryBackoff)
	assert.Equal(t, "debug", s.LogLevel, "unset variables keep file values")
	assert.Equal(t, 40*time.Millisecond, s.RetryMaxBackoff)
}

func TestLoadSettingsBadEnv(t *testing.T) {
	t.Setenv("TOOLBOX_RETRY_ATTEMPTS", "many")

	_, err := config.LoadSettings("")
	assert.ErrorContains(t, err, "parse env")
}

func TestLoadSettingsInvalid(t *testing.T) {
	_, err := config.LoadSettings(writeSettings(t, "log_level: loud\nretry:\n  max_attempts: 0\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "log level")
	assert.ErrorContains(t, err, "retry attempts")
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestOpenJournalSQLite(t *testing.T) {
	s := config.DefaultSettings()
	s.Journal = filepath.Join(t.TempDir(), "journal.db")

	store, err := s.OpenJournal()
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &journal.SQLiteStore{}, store)
}

func TestNewLogger(t *testing.T) {
	s := config.DefaultSettings()
	s.TaskName = "FileInfo"
	s.LogLevel = "warn"

	var buf bytes.Buffer
	logger := s.NewLogger(&buf)
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "task=FileInfo")
}
