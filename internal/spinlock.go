package internal

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// defaultSpinBudget is the number of failed CompareAndSwap attempts before a
// spinning goroutine starts yielding its P between attempts.
const defaultSpinBudget = 64

// SpinLock is a minimal non-reentrant busy-wait lock.
//
// Semantics:
//   - Lock spins on an atomic CompareAndSwap until it flips the flag from
//     unlocked to locked (no parking, no wait queue, no fairness)
//   - Unlock stores unlocked; unlocking an unlocked lock panics
//   - Do is the scoped form: the lock is released on every exit path,
//     including a panic inside fn
//
// Re-entrancy: NOT supported. A goroutine that calls Lock while already
// holding the lock spins forever. Guarded sections must stay short and
// non-recursive.
//
// The zero value is an unlocked lock with the default spin budget.
// SpinLock implements sync.Locker.
type SpinLock struct {
	flag   atomic.Bool
	budget int
}

var _ sync.Locker = (*SpinLock)(nil)

// NewSpinLock returns an unlocked SpinLock that yields after budget failed
// attempts. A budget <= 0 selects the default.
func NewSpinLock(budget int) *SpinLock {
	return &SpinLock{budget: budget}
}

// Lock acquires the lock, busy-waiting until it is available.
func (l *SpinLock) Lock() {
	budget := l.budget
	if budget <= 0 {
		budget = defaultSpinBudget
	}

	for spins := 0; !l.flag.CompareAndSwap(false, true); spins++ {
		if spins >= budget {
			runtime.Gosched()
		}
	}
}

// TryLock makes a single acquisition attempt and reports whether it succeeded.
func (l *SpinLock) TryLock() bool {
	return l.flag.CompareAndSwap(false, true)
}

// Unlock releases the lock.
// It panics if the lock is not held, like sync.Mutex.
func (l *SpinLock) Unlock() {
	if !l.flag.Swap(false) {
		panic("versioncell: unlock of unlocked spinlock")
	}
}

// Do runs fn while holding the lock.
func (l *SpinLock) Do(fn func()) {
	l.Lock()
	defer l.Unlock()
	fn()
}
