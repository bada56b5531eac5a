package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tberrors "github.com/randalmurphal/toolbox/pkg/toolbox/errors"
	"github.com/randalmurphal/toolbox/pkg/toolbox/journal"
)

// JournalMemory selects the in-memory journal.
const JournalMemory = "memory"

// Settings configures a toolbox application.
type Settings struct {
	// TaskName identifies the application in logs.
	TaskName string `env:"TOOLBOX_TASK_NAME"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"TOOLBOX_LOG_LEVEL"`

	// Journal is where dispatched events are recorded: empty to disable,
	// "memory", or an SQLite file path.
	Journal string `env:"TOOLBOX_JOURNAL"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `env:"TOOLBOX_METRICS"`

	// Tracing enables OpenTelemetry dispatch spans.
	Tracing bool `env:"TOOLBOX_TRACING"`

	// RetryAttempts is the number of transmit attempts; 1 disables retry.
	RetryAttempts int `env:"TOOLBOX_RETRY_ATTEMPTS"`

	// RetryBackoff is the delay before the first retry.
	RetryBackoff time.Duration `env:"TOOLBOX_RETRY_BACKOFF"`

	// RetryMaxBackoff caps the delay between retries.
	RetryMaxBackoff time.Duration `env:"TOOLBOX_RETRY_MAX_BACKOFF"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		TaskName:        "toolbox",
		LogLevel:        "info",
		RetryAttempts:   1,
		RetryBackoff:    tberrors.DefaultRetry.InitialBackoff,
		RetryMaxBackoff: tberrors.DefaultRetry.MaxBackoff,
	}
}

// SettingsFrom reads settings from a decoded file, keeping defaults for
// missing keys.
func SettingsFrom(c Config) Settings {
	d := DefaultSettings()
	retry := c.Sub("retry")
	return Settings{
		TaskName:        c.String("task_name", d.TaskName),
		LogLevel:        c.String("log_level", d.LogLevel),
		Journal:         c.String("journal", d.Journal),
		Metrics:         c.Bool("metrics", d.Metrics),
		Tracing:         c.Bool("tracing", d.Tracing),
		RetryAttempts:   retry.Int("max_attempts", d.RetryAttempts),
		RetryBackoff:    retry.Duration("initial_backoff", d.RetryBackoff),
		RetryMaxBackoff: retry.Duration("max_backoff", d.RetryMaxBackoff),
	}
}

// LoadSettings reads settings from path, applies TOOLBOX_* environment
// overrides and validates the result. An empty path starts from defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		c, err := FromFile(path)
		if err != nil {
			return Settings{}, err
		}
		s = SettingsFrom(c)
	}
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values the core cannot use.
func (s Settings) Validate() error {
	var errs []error
	if _, err := s.Level(); err != nil {
		errs = append(errs, err)
	}
	if s.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry attempts must be at least 1, got %d", s.RetryAttempts))
	}
	if s.RetryBackoff < 0 || s.RetryMaxBackoff < 0 {
		errs = append(errs, errors.New("retry backoff must not be negative"))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	return l, nil
}

// NewLogger returns a text logger at LogLevel tagged with TaskName.
func (s Settings) NewLogger(w io.Writer) *slog.Logger {
	level, _ := s.Level()
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("task", s.TaskName))
}

// Retry returns the transmit retry policy.
func (s Settings) Retry() tberrors.RetryConfig {
	if s.RetryAttempts <= 1 {
		return tberrors.NoRetry
	}
	return tberrors.RetryConfig{
		MaxAttempts:    s.RetryAttempts,
		InitialBackoff: s.RetryBackoff,
		MaxBackoff:     s.RetryMaxBackoff,
		Jitter:         tberrors.DefaultRetry.Jitter,
	}
}

// OpenJournal opens the configured journal store. It returns nil with no
// error when journaling is disabled.
func (s Settings) OpenJournal() (journal.Store, error) {
	switch s.Journal {
	case "":
		return nil, nil
	case JournalMemory:
		return journal.NewMemoryStore(), nil
	default:
		return journal.NewSQLiteStore(s.Journal)
	}
}
