package internal

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestUpdatesYieldsPacedWritesInOrder validates the update sequence against a
// writer slower than the consumer.
//
// Contract:
//   - Writes paced slower than the consumer are all delivered, in order
//
// Scenario:
//  1. Writer performs 50 distinct writes, 10ms apart
//  2. Consumer ranges over All until 50 values arrived
//  3. Assert: exactly 0..49 in order
func TestUpdatesYieldsPacedWritesInOrder(t *testing.T) {
	for _, mode := range []PollMode{PollNotify, PollBusy} {
		t.Run(mode.String(), func(t *testing.T) {
			const writes = 50

			w := NewWriter[int](Config{PollMode: mode})
			updates := w.NewReader().Updates()

			go func() {
				for i := 0; i < writes; i++ {
					w.Set(i)
					time.Sleep(10 * time.Millisecond)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			var got []int
			for v := range updates.All(ctx) {
				got = append(got, v)
				if len(got) == writes {
					break
				}
			}

			if len(got) != writes {
				t.Fatalf("received %d values (expected %d): %v", len(got), writes, got)
			}
			for i, v := range got {
				if v != i {
					t.Fatalf("got[%d]=%d (expected %d): %v", i, v, i, got)
				}
			}

			stats := updates.Stats()
			t.Logf("mode=%s refreshes=%d skipped=%d", mode, stats.Refreshes, stats.Skipped)
		})
	}
}

// TestUpdatesCollapsesBurst validates the lossy contract: a burst written
// between two steps is delivered as its last value only.
func TestUpdatesCollapsesBurst(t *testing.T) {
	w := NewWriter[int](Config{})
	updates := w.NewReader().Updates()

	for i := 1; i <= 10; i++ {
		w.Set(i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := updates.Next(ctx)
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if v != 10 {
		t.Errorf("Next()=%d (expected 10, burst collapses to latest)", v)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if _, err := updates.Next(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Next() err=%v (expected deadline, nothing newer than 10)", err)
	}
}

func TestUpdatesChan(t *testing.T) {
	w := NewWriter[string](Config{})
	updates := w.NewReader().Updates()

	ctx, cancel := context.WithCancel(context.Background())
	ch := updates.Chan(ctx)

	go func() {
		w.Set("A")
	}()

	select {
	case v, ok := <-ch:
		if !ok || v != "A" {
			t.Errorf("received (%q,%v) (expected (\"A\",true))", v, ok)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no value delivered")
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A value may race with cancellation; the channel must still close.
			if _, ok = <-ch; ok {
				t.Error("channel still open after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestUpdatesAllStopsOnCancel(t *testing.T) {
	w := NewWriter[int](Config{})
	updates := w.NewReader().Updates()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	n := 0
	for range updates.All(ctx) {
		n++
	}
	if n != 0 {
		t.Errorf("yielded %d values on a cell never written", n)
	}
}

// TestUpdatesNextDeadlineLoopLeavesNoWaiters validates a consumer polling
// the stream with short deadlines on a quiet cell.
func TestUpdatesNextDeadlineLoopLeavesNoWaiters(t *testing.T) {
	const rounds = 200

	w := NewWriter[int](Config{PollMode: PollNotify})
	updates := w.NewReader().Updates()

	for i := 0; i < rounds; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Microsecond)
		_, err := updates.Next(ctx)
		cancel()
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("round %d: Next() err=%v (expected deadline)", i, err)
		}
	}

	if got := w.Stats().Waiters; got != 0 {
		t.Fatalf("Waiters=%d after %d expired Next calls (expected 0)", got, rounds)
	}

	w.Set(7)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if v, err := updates.Next(ctx); err != nil || v != 7 {
		t.Errorf("Next()=(%d,%v) (expected (7,nil))", v, err)
	}
	if stats := w.Stats(); stats.Wakeups != 0 || stats.Waiters != 0 {
		t.Errorf("Waiters=%d Wakeups=%d (expected 0 and 0)", stats.Waiters, stats.Wakeups)
	}
}

// TestChanTakesStreamOver validates that once Chan runs, the stream can
// only be consumed from its channel.
func TestChanTakesStreamOver(t *testing.T) {
	w := NewWriter[int](Config{})
	updates := w.NewReader().Updates()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = updates.Chan(ctx)

	calls := map[string]func(){
		"Next": func() { updates.Next(ctx) },
		"All":  func() { updates.All(ctx) },
		"Chan": func() { updates.Chan(ctx) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, ErrStreamOwned) {
					t.Errorf("recovered %v (expected ErrStreamOwned)", err)
				}
			}()
			call()
		})
	}

	// Read-only accessors stay usable.
	if updates.ID() != updates.Stats().ID {
		t.Error("ID() and Stats().ID disagree")
	}
}
