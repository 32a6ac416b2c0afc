package internal

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/google/uuid"
)

// Updates is the update sequence of one reader: a lazy, logically infinite
// stream built by awaiting NextUpdate in a loop and re-arming it after every
// value.
//
// LOSSY by contract: a burst of writes between two steps collapses into the
// single most recent value (latest value wins). The stream never ends on its
// own; it stops only when the consumer stops pulling or ctx ends.
//
// An Updates owns its reader. Only one stream exists per reader, and the
// reader cannot be used directly afterwards. Chan in turn takes the stream
// over: Next, All and Chan panic with ErrStreamOwned once it has run.
type Updates[T any] struct {
	r     *Reader[T]
	owned atomic.Bool // Set by Chan
}

// Updates converts the reader into its update sequence.
//
// The reader is CONSUMED: every later call on it (including a second
// Updates) panics with ErrReaderConsumed.
func (r *Reader[T]) Updates() *Updates[T] {
	if !r.consumed.CompareAndSwap(false, true) {
		panic(ErrReaderConsumed)
	}

	r.st.log.Debug("versioncell: reader converted to update stream",
		"reader_id", r.id,
		"version", r.localVersion.Load(),
	)
	return &Updates[T]{r: r}
}

func (u *Updates[T]) mustOwn() {
	if u.owned.Load() {
		panic(ErrStreamOwned)
	}
}

// Next awaits the next update and returns it.
// The error wraps ctx.Err() when ctx ends first.
func (u *Updates[T]) Next(ctx context.Context) (T, error) {
	u.mustOwn()
	return u.next(ctx)
}

func (u *Updates[T]) next(ctx context.Context) (T, error) {
	n := &NextUpdate[T]{r: u.r, stream: true}
	return n.Await(ctx)
}

// All returns the stream as a range-over-func sequence.
//
// Example:
//
//	for v := range updates.All(ctx) {
//	    use(v)
//	}
//
// The loop ends when the body breaks or ctx ends.
func (u *Updates[T]) All(ctx context.Context) iter.Seq[T] {
	u.mustOwn()
	return u.all(ctx)
}

func (u *Updates[T]) all(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := u.next(ctx)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Chan runs the stream on its own goroutine and delivers values on the
// returned unbuffered channel, which is closed when ctx ends.
//
// The producing goroutine blocks on send until the consumer receives, so a
// slow consumer skips intermediate values exactly like a slow reader.
//
// The goroutine owns the stream from here on: any later Next, All or Chan
// on u panics with ErrStreamOwned.
func (u *Updates[T]) Chan(ctx context.Context) <-chan T {
	if !u.owned.CompareAndSwap(false, true) {
		panic(ErrStreamOwned)
	}
	out := make(chan T)

	go func() {
		defer close(out)
		defer func() {
			u.r.st.log.Debug("versioncell: update stream goroutine stopped",
				"reader_id", u.r.id,
				"version", u.r.localVersion.Load(),
			)
		}()

		for v := range u.all(ctx) {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// ID returns the identity of the underlying reader.
func (u *Updates[T]) ID() uuid.UUID {
	return u.r.id
}

// Stats returns the counters of the underlying reader.
// Safe to call from any goroutine, including while Chan is running.
func (u *Updates[T]) Stats() ReaderStats {
	return u.r.Stats()
}
