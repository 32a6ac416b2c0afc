package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
poll_mode: busy
writer:
  writes: 10
readers:
  - name: only
    mode: await
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.PollMode != "busy" {
		t.Errorf("PollMode=%q (expected busy)", cfg.PollMode)
	}
	if cfg.Writer.Writes != 10 {
		t.Errorf("Writer.Writes=%d (expected 10)", cfg.Writer.Writes)
	}
	if cfg.Writer.IntervalMS != Default().Writer.IntervalMS {
		t.Errorf("Writer.IntervalMS=%d (expected default kept)", cfg.Writer.IntervalMS)
	}
	if len(cfg.Readers) != 1 || cfg.Readers[0].Name != "only" {
		t.Errorf("Readers=%+v (expected the single configured reader)", cfg.Readers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel=%q (expected default info)", cfg.LogLevel)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want string
	}{
		"poll mode":     {"poll_mode: lazy", "poll_mode"},
		"log level":     {"log_level: loud", "log_level"},
		"writes":        {"writer: {writes: 0}", "writer.writes"},
		"interval":      {"writer: {writes: 1, interval_ms: -1}", "writer.interval_ms"},
		"no readers":    {"readers: []", "readers"},
		"reader name":   {"readers: [{mode: await}]", "readers[0].name"},
		"duplicate":     {"readers: [{name: a, mode: await}, {name: a, mode: stream}]", "duplicate"},
		"reader mode":   {"readers: [{name: a, mode: sleep}]", "readers[0].mode"},
		"poll interval": {"readers: [{name: a, mode: poll}]", "poll_interval_ms"},
		"malformed":     {"writer: [", "failed to parse config"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() succeeded (expected error)")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("writer: {writes: 3, interval_ms: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Writer.Writes != 3 || cfg.Writer.Interval().Milliseconds() != 1 {
		t.Errorf("Writer=%+v (expected writes=3 interval=1ms)", cfg.Writer)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}
