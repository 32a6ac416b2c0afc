package versioncell

import (
	"log/slog"

	"github.com/e7canasta/orion-care-sensor/modules/versioncell/internal"
)

// Option configures a cell at construction.
type Option func(*internal.Config)

// WithLogger sets the logger for lifecycle events (reader created, cloned,
// converted to a stream). Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithPollMode selects how pending NextUpdate polls are resumed.
// Defaults to PollNotify.
func WithPollMode(mode PollMode) Option {
	return func(c *internal.Config) {
		c.PollMode = mode
	}
}

// WithSpinBudget sets how many failed lock attempts a goroutine makes before
// yielding between attempts. Values <= 0 keep the default.
func WithSpinBudget(n int) Option {
	return func(c *internal.Config) {
		c.SpinBudget = n
	}
}

func buildConfig(opts []Option) internal.Config {
	var cfg internal.Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
