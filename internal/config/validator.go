package config

import (
	"fmt"

	"github.com/e7canasta/orion-care-sensor/modules/versioncell/internal"
)

// Validate checks a scenario for consistency
func Validate(cfg *Config) error {
	if _, err := internal.ParsePollMode(cfg.PollMode); err != nil {
		return fmt.Errorf("poll_mode: %w", err)
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: must be debug, info, warn or error (got %q)", cfg.LogLevel)
	}

	if cfg.Writer.Writes <= 0 {
		return fmt.Errorf("writer.writes: must be positive (got %d)", cfg.Writer.Writes)
	}
	if cfg.Writer.IntervalMS < 0 {
		return fmt.Errorf("writer.interval_ms: must not be negative (got %d)", cfg.Writer.IntervalMS)
	}

	if len(cfg.Readers) == 0 {
		return fmt.Errorf("readers: at least one reader is required")
	}

	seen := make(map[string]bool, len(cfg.Readers))
	for i, r := range cfg.Readers {
		if r.Name == "" {
			return fmt.Errorf("readers[%d].name: required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("readers[%d].name: duplicate %q", i, r.Name)
		}
		seen[r.Name] = true

		switch r.Mode {
		case ModePoll:
			if r.PollIntervalMS <= 0 {
				return fmt.Errorf("readers[%d].poll_interval_ms: must be positive in poll mode (got %d)", i, r.PollIntervalMS)
			}
		case ModeAwait, ModeStream:
		default:
			return fmt.Errorf("readers[%d].mode: must be poll, await or stream (got %q)", i, r.Mode)
		}
	}

	return nil
}
