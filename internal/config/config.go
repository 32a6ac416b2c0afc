// Package config loads the cellwatch demo scenario from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Reader modes
const (
	ModePoll   = "poll"   // Observe on a fixed interval
	ModeAwait  = "await"  // Reader.Await in a loop
	ModeStream = "stream" // Reader.Updates().All
)

// Config represents a complete cellwatch scenario
type Config struct {
	PollMode string         `yaml:"poll_mode"` // notify, busy
	LogLevel string         `yaml:"log_level"` // debug, info, warn, error
	Writer   WriterConfig   `yaml:"writer"`
	Readers  []ReaderConfig `yaml:"readers"`
}

// WriterConfig paces the single writer
type WriterConfig struct {
	Writes     int `yaml:"writes"`      // number of Set calls
	IntervalMS int `yaml:"interval_ms"` // delay between Set calls
}

// ReaderConfig defines one consumer
type ReaderConfig struct {
	Name           string `yaml:"name"`
	Mode           string `yaml:"mode"`             // poll, await, stream
	PollIntervalMS int    `yaml:"poll_interval_ms"` // poll mode only
}

// Interval returns the writer pacing as a duration
func (w WriterConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMS) * time.Millisecond
}

// PollInterval returns the reader polling period as a duration
func (r ReaderConfig) PollInterval() time.Duration {
	return time.Duration(r.PollIntervalMS) * time.Millisecond
}

// Default returns the built-in scenario: one fast poller, one slow poller
// (expected to skip), one awaiting reader and one stream consumer.
func Default() *Config {
	return &Config{
		PollMode: "notify",
		LogLevel: "info",
		Writer: WriterConfig{
			Writes:     50,
			IntervalMS: 20,
		},
		Readers: []ReaderConfig{
			{Name: "fast-poller", Mode: ModePoll, PollIntervalMS: 5},
			{Name: "slow-poller", Mode: ModePoll, PollIntervalMS: 100},
			{Name: "awaiter", Mode: ModeAwait},
			{Name: "streamer", Mode: ModeStream},
		},
	}
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
// Fields missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
