package internal

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Reader is a per-consumer cursor over a cell.
//
// Architecture:
//   - Private cache of the last copied value (cache, present)
//   - Last-observed version (localVersion), starts at 0
//   - Shared pointer to the storage block
//
// Refresh is lazy: HasUpdate compares localVersion with the shared version
// (atomic load, no lock) and Observe copies the value only when stale.
//
// LATEST-VALUE-WINS: a reader that checks rarely skips intermediate writes
// and only ever sees the most recent one. Successive observations never go
// backwards (monotonic local view).
//
// Thread-safety:
//   - A Reader is owned by ONE goroutine (Observe mutates its cache)
//   - Clone gives another goroutine an independent cursor
//   - ID, Version and Stats are safe from any goroutine
type Reader[T any] struct {
	st *storage[T]
	id uuid.UUID

	// --- Local View (owner goroutine only) ---

	cache   T
	present bool

	// --- Published Cursor State (atomic, read by Stats) ---

	localVersion atomic.Uint64
	refreshes    atomic.Uint64
	skipped      atomic.Uint64
	lastRefresh  atomic.Int64 // UnixNano, 0 = never

	// --- Lifecycle ---

	consumed atomic.Bool // Set by Updates (reader moved into a stream)
}

func newReader[T any](st *storage[T]) *Reader[T] {
	return &Reader[T]{st: st, id: uuid.New()}
}

// mustLive panics if the reader was converted into an update stream.
func (r *Reader[T]) mustLive() {
	if r.consumed.Load() {
		panic(ErrReaderConsumed)
	}
}

// HasUpdate reports whether the cell holds a version newer than the one this
// reader last copied. It never locks and has no side effects.
func (r *Reader[T]) HasUpdate() bool {
	r.mustLive()
	return r.hasUpdate()
}

func (r *Reader[T]) hasUpdate() bool {
	return r.localVersion.Load() < r.st.version.Load()
}

// Observe returns the latest value, refreshing the local cache if stale.
//
// Algorithm:
//  1. No update: return the cached value (no lock taken)
//  2. Stale: under the slot lock, copy the value into the cache and record
//     the version visible at that moment
//  3. Return the refreshed cache
//
// The boolean is false only on an empty cell (New) before the first Set.
//
// The value is copied by assignment. Reference types (slices, maps,
// pointers) are shared with the writer and MUST be treated as immutable
// once passed to Set.
func (r *Reader[T]) Observe() (T, bool) {
	r.mustLive()
	return r.observe()
}

func (r *Reader[T]) observe() (T, bool) {
	if !r.hasUpdate() {
		return r.cache, r.present
	}

	prev := r.localVersion.Load()
	var seen uint64
	r.present = r.st.slot.loadInto(&r.cache, func() {
		seen = r.st.version.Load()
	})
	r.localVersion.Store(seen)

	r.refreshes.Add(1)
	if prev != 0 && seen > prev+1 {
		r.skipped.Add(seen - prev - 1)
	}
	r.lastRefresh.Store(time.Now().UnixNano())

	return r.cache, r.present
}

// Load is Observe without the presence flag: the zero value of T is
// returned while an empty cell has never been written.
func (r *Reader[T]) Load() T {
	v, _ := r.Observe()
	return v
}

// Version returns the last version this reader copied (0 = never).
func (r *Reader[T]) Version() uint64 {
	return r.localVersion.Load()
}

// ID returns the reader's identity.
func (r *Reader[T]) ID() uuid.UUID {
	return r.id
}

// Clone returns an independent cursor starting from this reader's local
// view. The clone gets a fresh ID and zeroed counters.
func (r *Reader[T]) Clone() *Reader[T] {
	r.mustLive()

	c := newReader(r.st)
	c.cache = r.cache
	c.present = r.present
	c.localVersion.Store(r.localVersion.Load())

	r.st.log.Debug("versioncell: reader cloned",
		"reader_id", c.id,
		"parent_id", r.id,
		"version", c.localVersion.Load(),
	)
	return c
}

// Stats returns a snapshot of this reader's counters.
func (r *Reader[T]) Stats() ReaderStats {
	stats := ReaderStats{
		ID:           r.id,
		LocalVersion: r.localVersion.Load(),
		Refreshes:    r.refreshes.Load(),
		Skipped:      r.skipped.Load(),
	}
	if ns := r.lastRefresh.Load(); ns != 0 {
		stats.LastRefreshAt = time.Unix(0, ns)
	}
	return stats
}
