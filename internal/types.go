package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrReaderConsumed is the panic value raised when a Reader is used after
	// it was converted into an update stream.
	ErrReaderConsumed = errors.New("versioncell: reader consumed by update stream")

	// ErrStreamOwned is the panic value raised when an Updates is used after
	// Chan handed it to its own goroutine.
	ErrStreamOwned = errors.New("versioncell: update stream owned by Chan")

	// ErrUnknownPollMode is returned by ParsePollMode for unrecognised names.
	ErrUnknownPollMode = errors.New("versioncell: unknown poll mode")
)

// PollMode selects how a pending NextUpdate asks to be resumed.
type PollMode int

const (
	// PollNotify parks the waker on the cell and wakes it on the next write.
	PollNotify PollMode = iota
	// PollBusy wakes the waker immediately on every pending poll, so the
	// driver re-polls as soon as the scheduler lets it run again.
	PollBusy
)

// String returns the configuration name of the mode.
func (m PollMode) String() string {
	switch m {
	case PollNotify:
		return "notify"
	case PollBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// ParsePollMode maps "notify" or "busy" (case-insensitive) to a PollMode.
func ParsePollMode(s string) (PollMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "notify":
		return PollNotify, nil
	case "busy":
		return PollBusy, nil
	default:
		return PollNotify, fmt.Errorf("%w: %q", ErrUnknownPollMode, s)
	}
}

// Config holds per-cell settings. The zero value is usable.
type Config struct {
	// Logger receives lifecycle events (reader created, stream conversion).
	// Nil selects slog.Default().
	Logger *slog.Logger

	// PollMode controls how pending NextUpdate polls are resumed.
	PollMode PollMode

	// SpinBudget is the number of failed lock attempts before a spinning
	// goroutine yields between attempts. <= 0 selects the default.
	SpinBudget int
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.SpinBudget <= 0 {
		c.SpinBudget = defaultSpinBudget
	}
	return c
}

// Waker is the scheduler contract used by NextUpdate.Poll: calling Wake asks
// for the pending operation to be polled again. Wake must not block.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// CellStats is a snapshot of cell-wide operational state.
type CellStats struct {
	// Version is the current published version.
	Version uint64

	// Writes counts Set calls over the cell lifetime.
	Writes uint64

	// Wakeups counts wakers woken by Set (PollNotify only).
	Wakeups uint64

	// Waiters is the number of wakers currently parked.
	Waiters int
}

// ReaderStats tracks per-reader operational state.
type ReaderStats struct {
	// ID is the reader's identity (fresh for every NewReader and Clone).
	ID uuid.UUID

	// LocalVersion is the last version this reader copied.
	LocalVersion uint64

	// Refreshes counts copies taken from the shared slot.
	Refreshes uint64

	// Skipped counts versions the reader jumped over between refreshes.
	// Skips are EXPECTED under latest-value-wins: a reader that polls slower
	// than the writer writes sees only the most recent value.
	Skipped uint64

	// LastRefreshAt is the time of the last refresh (zero if none).
	LastRefreshAt time.Time
}
