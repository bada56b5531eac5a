/*
Package config loads settings for a toolbox application.

# Settings

Settings collects everything an application needs to wire the dispatch
core: the task name, log level, journal location, metrics and tracing
switches, and the transmit retry policy. LoadSettings reads them from a
YAML or JSON file, then lets TOOLBOX_* environment variables override
individual values:

	s, err := config.LoadSettings("toolbox.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	logger := s.NewLogger(os.Stderr)

A settings file looks like:

	task_name: FileInfo
	log_level: debug
	journal: ./journal.db
	metrics: true
	retry:
	  max_attempts: 3
	  initial_backoff: 10ms

# Config

Config wraps the decoded file and provides typed accessors that return a
default when a key is missing or has the wrong type. Keys may be dotted
paths into nested maps:

	cfg := config.New(map[string]any{
	    "retry": map[string]any{"max_attempts": 3},
	})
	attempts := cfg.Int("retry.max_attempts", 1) // 3

Duration accepts a time.ParseDuration string or a number of seconds.
*/
package config
