package versioncell

import (
	"github.com/e7canasta/orion-care-sensor/modules/versioncell/internal"
)

// Writer is the single mutation handle of a cell.
// See internal/writer.go for full documentation.
type Writer[T any] = internal.Writer[T]

// Reader is a per-consumer cursor with a cached copy and last-seen version.
// See internal/reader.go for full documentation.
type Reader[T any] = internal.Reader[T]

// NextUpdate is the single-shot "next update" operation of a Reader.
// See internal/next.go for full documentation.
type NextUpdate[T any] = internal.NextUpdate[T]

// Updates is the lossy update sequence a Reader converts into.
// See internal/updates.go for full documentation.
type Updates[T any] = internal.Updates[T]

// SpinLock is the busy-wait lock guarding the value slot, exported for reuse.
type SpinLock = internal.SpinLock

// Waker is the scheduler contract used by NextUpdate.Poll.
type Waker = internal.Waker

// WakerFunc adapts a function to Waker.
type WakerFunc = internal.WakerFunc

// PollMode selects how pending NextUpdate polls are resumed.
type PollMode = internal.PollMode

const (
	// PollNotify parks pending pollers and wakes them on the next Set (default).
	PollNotify = internal.PollNotify
	// PollBusy re-schedules pending pollers immediately (spin-poll).
	PollBusy = internal.PollBusy
)

// CellStats is re-exported from internal package.
// See internal/types.go for full documentation.
type CellStats = internal.CellStats

// ReaderStats is re-exported from internal package.
// See internal/types.go for full documentation.
type ReaderStats = internal.ReaderStats

// New creates an empty cell (optional-value variant) and returns its writer.
//
// Before the first Set, readers observe (zero, false):
//
//	w := versioncell.New[string]()
//	r := w.NewReader()
//	_, ok := r.Observe() // ok == false
//	w.Set("hello")
//	v, ok := r.Observe() // "hello", true
func New[T any](opts ...Option) *Writer[T] {
	return internal.NewWriter[T](buildConfig(opts))
}

// NewDefault creates a cell holding T's zero value (default-value variant).
// Readers always observe a value; before the first Set it is the zero value.
func NewDefault[T any](opts ...Option) *Writer[T] {
	var zero T
	return internal.NewWriterWith(buildConfig(opts), zero)
}

// NewWith creates a cell pre-initialised with v.
// Readers always observe a value; before the first Set it is v.
func NewWith[T any](v T, opts ...Option) *Writer[T] {
	return internal.NewWriterWith(buildConfig(opts), v)
}

// NewSpinLock returns an unlocked SpinLock that yields after budget failed
// acquisition attempts (<= 0 selects the default).
func NewSpinLock(budget int) *SpinLock {
	return internal.NewSpinLock(budget)
}

// ParsePollMode maps "notify" or "busy" to a PollMode.
// Empty input selects PollNotify.
func ParsePollMode(s string) (PollMode, error) {
	return internal.ParsePollMode(s)
}
