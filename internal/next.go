package internal

import (
	"context"
	"fmt"
	"runtime"
)

// NextUpdate is a single-shot "next update" operation bound to one reader.
//
// It follows the poll contract of a cooperative scheduler: Poll either
// completes with a value or returns pending after arranging for the given
// Waker to be called when polling again is worthwhile. Await drives Poll on
// the calling goroutine.
//
// Semantics:
//   - Completes with the first version newer than the reader's local
//     version at the time of the poll (latest value wins, intermediate
//     writes may be skipped)
//   - No timeout, no cancellation of its own: dropping an unfinished
//     NextUpdate abandons it with no side effect (Await withdraws its
//     waker on every return; a caller driving Poll directly calls Cancel)
//   - At most one waker is parked per NextUpdate; a pending poll replaces
//     the previous registration
//   - Once complete, further polls return the same value
type NextUpdate[T any] struct {
	r      *Reader[T]
	stream bool // Owned by an Updates stream (reader already consumed)

	parked *waiter // PollNotify registration, nil when none

	done  bool
	value T
}

// testHookParked runs between park and the version re-check.
var testHookParked func()

// Next returns a single-shot operation resolving to the next update.
func (r *Reader[T]) Next() *NextUpdate[T] {
	r.mustLive()
	return &NextUpdate[T]{r: r}
}

// Await blocks until the reader sees an update or ctx ends.
// Shorthand for r.Next().Await(ctx).
func (r *Reader[T]) Await(ctx context.Context) (T, error) {
	return r.Next().Await(ctx)
}

// Poll advances the operation.
//
// Algorithm:
//  1. Reader has an update: Observe. Present value → ready
//  2. Otherwise pending:
//     - PollBusy: call w.Wake() right away (immediate re-schedule)
//     - PollNotify: park w on the cell, then re-check the version and wake
//     w immediately if an update slipped in meanwhile
//
// The empty-after-update case (step 1 observing no value) cannot happen
// with the publication order Set uses; it is handled as pending.
func (n *NextUpdate[T]) Poll(w Waker) (T, bool) {
	if n.done {
		return n.value, true
	}
	if !n.stream {
		n.r.mustLive()
	}

	if n.r.hasUpdate() {
		if v, ok := n.r.observe(); ok {
			n.Cancel()
			n.done, n.value = true, v
			return v, true
		}
	}

	n.pending(w)

	var zero T
	return zero, false
}

func (n *NextUpdate[T]) pending(w Waker) {
	st := n.r.st
	if st.cfg.PollMode == PollBusy {
		w.Wake()
		return
	}

	n.Cancel()
	n.parked = st.park(w)
	if testHookParked != nil {
		testHookParked()
	}
	if n.r.hasUpdate() && !n.parked.woken.Load() {
		w.Wake()
	}
}

// Cancel withdraws the waker parked by the last pending Poll, if a write
// has not already woken it. A later Poll parks again.
func (n *NextUpdate[T]) Cancel() {
	if n.parked == nil {
		return
	}
	n.r.st.unpark(n.parked)
	n.parked = nil
}

// Await drives Poll on the calling goroutine until it completes or ctx
// ends. ctx is the caller-imposed timeout/cancellation policy; the returned
// error wraps ctx.Err().
func (n *NextUpdate[T]) Await(ctx context.Context) (T, error) {
	wake := make(chan struct{}, 1)
	waker := WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	busy := n.r.st.cfg.PollMode == PollBusy
	defer n.Cancel()

	for {
		if v, ok := n.Poll(waker); ok {
			return v, nil
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, fmt.Errorf("versioncell: await next update: %w", ctx.Err())
		case <-wake:
		}

		if busy {
			runtime.Gosched()
		}
	}
}
