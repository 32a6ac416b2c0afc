// Package internal implements the versioned cell behind the versioncell facade.
//
// This package is INTERNAL - clients MUST use the public API in the parent package.
package internal

import (
	"log/slog"
	"sync/atomic"
)

// storage is the shared block jointly referenced by one Writer and any
// number of Readers. It is garbage collected once the last handle is gone.
//
// Fields:
//   - version: publication counter, bumped after every write (atomic only)
//   - slot: the value, reachable only under its spin lock
//   - waiters: wakers parked by pending NextUpdate polls (PollNotify)
//
// Ordering: Set writes the slot, releases its lock and only then bumps
// version. Go atomics are sequentially consistent, so a reader that loads a
// version and then takes the slot lock sees a value at least that new.
type storage[T any] struct {
	version atomic.Uint64
	slot    slot[T]

	// --- Waiter list (PollNotify) ---

	waitMu  SpinLock // Protects waiters
	waiters []*waiter
	waiting atomic.Int32 // len(waiters), readable without waitMu

	// --- Operational Stats ---

	writes  atomic.Uint64 // Set calls
	wakeups atomic.Uint64 // Wake calls issued by Set

	cfg Config
	log *slog.Logger
}

func newStorage[T any](cfg Config) *storage[T] {
	cfg = cfg.withDefaults()
	st := &storage[T]{cfg: cfg, log: cfg.Logger}
	st.slot.mu.budget = cfg.SpinBudget
	st.waitMu.budget = cfg.SpinBudget
	return st
}

// publish stores v and makes it visible to readers.
//
// Algorithm:
//  1. Overwrite the slot value under its lock (scoped)
//  2. Bump version (publication point)
//  3. Wake parked waiters, if any
//
// Waiters are collected after the bump. A poller registers first and
// re-checks the version second, so either its registration is collected
// here or its re-check observes the new version. No wakeup is lost.
func (st *storage[T]) publish(v T) {
	st.slot.store(v)
	st.version.Add(1)
	st.writes.Add(1)

	if st.waiting.Load() == 0 {
		return
	}

	var woken []*waiter
	st.waitMu.Do(func() {
		woken = st.waiters
		st.waiters = nil
		st.waiting.Store(0)
	})

	for _, wt := range woken {
		wt.woken.Store(true)
		wt.w.Wake()
	}
	st.wakeups.Add(uint64(len(woken)))
}

// waiter is one registration in the waiter list. Its address is the token
// handed back by park and accepted by unpark.
type waiter struct {
	w     Waker
	woken atomic.Bool // Collected by publish
}

// park registers w to be woken by the next publish and returns its token.
func (st *storage[T]) park(w Waker) *waiter {
	wt := &waiter{w: w}
	st.waitMu.Do(func() {
		st.waiters = append(st.waiters, wt)
		st.waiting.Store(int32(len(st.waiters)))
	})
	return wt
}

// unpark withdraws a registration made by park.
// No-op if a publish already collected it.
func (st *storage[T]) unpark(wt *waiter) {
	if st.waiting.Load() == 0 {
		return
	}

	st.waitMu.Do(func() {
		for i, p := range st.waiters {
			if p != wt {
				continue
			}
			last := len(st.waiters) - 1
			st.waiters[i] = st.waiters[last]
			st.waiters[last] = nil
			st.waiters = st.waiters[:last]
			st.waiting.Store(int32(last))
			return
		}
	})
}
