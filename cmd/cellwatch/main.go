package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/e7canasta/orion-care-sensor/modules/versioncell"
	"github.com/e7canasta/orion-care-sensor/modules/versioncell/internal/config"
)

// Version information
const version = "v0.1.0"

// Sample is the value published by the writer.
type Sample struct {
	Seq       int
	TraceID   string
	Timestamp time.Time
}

// readerReport is what each reader goroutine hands back for the summary.
type readerReport struct {
	name     string
	mode     string
	received int
	lastSeq  int
	stats    versioncell.ReaderStats
}

func main() {
	configPath := flag.String("config", "", "Scenario YAML file (optional, built-in scenario if empty)")
	debug := flag.Bool("debug", false, "Enable debug logging (overrides log_level)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cellwatch %s\n", version)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logLevel := parseLevel(cfg.LogLevel)
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	mode, err := versioncell.ParsePollMode(cfg.PollMode)
	if err != nil {
		log.Fatalf("Invalid poll mode: %v", err)
	}

	fmt.Printf("\ncellwatch %s\n", version)
	fmt.Printf("  Poll mode: %s\n", mode)
	fmt.Printf("  Writes:    %d every %v\n", cfg.Writer.Writes, cfg.Writer.Interval())
	fmt.Printf("  Readers:   %d\n\n", len(cfg.Readers))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports, err := run(ctx, cfg, mode, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("cellwatch: scenario failed", "error", err)
		os.Exit(1)
	}

	printReports(reports, cfg.Writer.Writes)
}

// run executes the scenario: one writer and every configured reader, joined
// by an errgroup. Readers stop once they observe the final sample, or when
// ctx ends.
func run(ctx context.Context, cfg *config.Config, mode versioncell.PollMode, logger *slog.Logger) ([]readerReport, error) {
	cell := versioncell.New[Sample](
		versioncell.WithLogger(logger),
		versioncell.WithPollMode(mode),
	)

	g, gctx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		reports []readerReport
	)
	collect := func(r readerReport) {
		mu.Lock()
		reports = append(reports, r)
		mu.Unlock()
	}

	last := cfg.Writer.Writes
	for _, rc := range cfg.Readers {
		reader := cell.NewReader()
		g.Go(func() error {
			report, err := runReader(gctx, rc, reader, last)
			collect(report)
			return err
		})
	}

	g.Go(func() error {
		return runWriter(gctx, cell, cfg.Writer)
	})

	err := g.Wait()

	cs := cell.Stats()
	slog.Info("cellwatch: cell stats",
		"version", cs.Version,
		"writes", cs.Writes,
		"wakeups", cs.Wakeups,
		"waiters", cs.Waiters,
	)

	return reports, err
}

func runWriter(ctx context.Context, cell *versioncell.Writer[Sample], wc config.WriterConfig) error {
	ticker := time.NewTicker(max(wc.Interval(), time.Millisecond))
	defer ticker.Stop()

	for seq := 1; seq <= wc.Writes; seq++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		cell.Set(Sample{
			Seq:       seq,
			TraceID:   uuid.New().String(),
			Timestamp: time.Now(),
		})
	}

	slog.Info("cellwatch: writer done", "writes", wc.Writes)
	return nil
}

func runReader(ctx context.Context, rc config.ReaderConfig, reader *versioncell.Reader[Sample], last int) (report readerReport, err error) {
	report = readerReport{name: rc.Name, mode: rc.Mode}

	record := func(s Sample) {
		if s.Seq <= report.lastSeq {
			return
		}
		report.received++
		report.lastSeq = s.Seq
		slog.Debug("cellwatch: sample",
			"reader", rc.Name,
			"seq", s.Seq,
			"trace_id", s.TraceID,
			"age", time.Since(s.Timestamp),
		)
	}

	switch rc.Mode {
	case config.ModePoll:
		defer func() { report.stats = reader.Stats() }()

		ticker := time.NewTicker(rc.PollInterval())
		defer ticker.Stop()
		for report.lastSeq < last {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-ticker.C:
			}
			if s, ok := reader.Observe(); ok {
				record(s)
			}
		}

	case config.ModeAwait:
		defer func() { report.stats = reader.Stats() }()

		for report.lastSeq < last {
			s, err := reader.Await(ctx)
			if err != nil {
				return report, err
			}
			record(s)
		}

	case config.ModeStream:
		updates := reader.Updates()
		defer func() { report.stats = updates.Stats() }()

		for s := range updates.All(ctx) {
			record(s)
			if report.lastSeq >= last {
				break
			}
		}
		if report.lastSeq < last {
			return report, ctx.Err()
		}
	}

	return report, nil
}

func printReports(reports []readerReport, writes int) {
	sort.Slice(reports, func(i, j int) bool { return reports[i].name < reports[j].name })

	fmt.Printf("\n%-14s %-7s %9s %8s %8s %9s\n", "READER", "MODE", "RECEIVED", "LAST", "SKIPPED", "SKIPRATE")
	for _, r := range reports {
		fmt.Printf("%-14s %-7s %5d/%-3d %8d %8d %8.1f%%\n",
			r.name, r.mode, r.received, writes, r.lastSeq, r.stats.Skipped,
			versioncell.SkipRate(r.stats)*100,
		)
	}
	fmt.Println()
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
