// Package versioncell implements a single-writer, multiple-reader versioned
// value cell with latest-value-wins semantics, plus an asynchronous bridge
// to await the next update or consume updates as a stream.
//
// # Philosophy
//
// "Latest value wins. Readers never block the writer."
//
// One writer publishes values; any number of readers observe them at their
// own pace. A reader that checks rarely skips intermediate writes and sees
// only the most recent one. This is the central contract, not a bug:
//
//	NO INTERMEDIATE-VALUE DELIVERY IS GUARANTEED,
//	ONLY THE MOST RECENT VALUE AT OBSERVATION TIME.
//
// If every value matters, use a queue (a channel), not a cell.
//
// # Architecture
//
//	Writer.Set ──► storage ──────────────► Reader.Observe ──► NextUpdate / Updates
//	               version (atomic)        local version       Poll(Waker)
//	               slot (SpinLock + value) local cache         Await(ctx)
//	               waiters (PollNotify)                        All(ctx) / Chan(ctx)
//
//   - Set: overwrite the slot under its SpinLock, release, then bump the
//     version. The bump is the publication point.
//   - HasUpdate: one atomic load, no lock. The fast path.
//   - Observe: copy the slot into the reader's cache only when stale.
//
// Readers contend with each other and with the writer only for the length of
// one copy. The writer never waits for readers.
//
// # Basic Usage
//
// Writer side:
//
//	cell := versioncell.New[Config]()
//	cell.Set(loadConfig())
//
// Reader side (any goroutine, one reader per goroutine):
//
//	r := cell.NewReader()
//	for {
//	    if cfg, ok := r.Observe(); ok {
//	        apply(cfg) // latest config, refreshed only when changed
//	    }
//	    time.Sleep(time.Second)
//	}
//
// Waiting for a change:
//
//	cfg, err := r.Await(ctx) // next version newer than r.Version()
//
// Consuming changes as a stream (the reader is consumed):
//
//	for cfg := range r.Updates().All(ctx) {
//	    apply(cfg)
//	}
//
// # Variants
//
//   - New: empty cell, version 0. Observe returns (zero, false) until the
//     first Set.
//   - NewDefault / NewWith: pre-initialised cell, version 1. Observe always
//     returns a value; a fresh reader refreshes on first use.
//
// # Poll Modes
//
// NextUpdate follows a poll/waker contract (see Waker):
//
//   - PollNotify (default): a pending poll parks its waker on the cell and is
//     woken by the next Set. The writer pays one atomic load per Set when
//     nobody waits.
//   - PollBusy: a pending poll wakes itself immediately and the driver
//     re-polls after runtime.Gosched. No writer bookkeeping, CPU spent on
//     polling.
//
// Neither mode adds timeouts. Await and the Updates methods take a
// context.Context; cancellation is the caller's policy. A cancelled Await
// leaves no waker behind. Code driving NextUpdate.Poll itself calls
// NextUpdate.Cancel when it gives up.
//
// # Zero-Copy Contract
//
// Values are copied by assignment. For reference types (slices, maps,
// pointers) the writer and all readers share the referenced data:
//
//   - Writer: MUST NOT modify a value after Set
//   - Readers: MUST NOT modify observed values
//
// # Thread Safety
//
//   - Writer.Set: one goroutine at a time (single writer)
//   - Writer.NewReader, Version, Stats: any goroutine
//   - Reader: owned by one goroutine; use Clone for another goroutine
//   - Updates: owned by one goroutine; after Chan, only by Chan's goroutine
//   - Reader.ID, Version, Stats and Updates.Stats: any goroutine
//
// # Monitoring
//
//	stats := r.Stats()
//	if versioncell.SkipRate(stats) > 0.5 {
//	    slog.Warn("reader falling behind", "reader_id", stats.ID, "skipped", stats.Skipped)
//	}
//
// Skips are EXPECTED when a reader polls slower than the writer writes.
//
// # Liveness
//
// SpinLock is non-reentrant and unfair. Critical sections are a single
// assignment or copy and release on every exit path (SpinLock.Do), so a
// stuck holder is not possible in normal operation. There is no detection
// or backoff beyond yielding after the spin budget.
package versioncell
