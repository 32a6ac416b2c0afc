package internal

// slot is the guarded value cell of a storage block.
//
// The value is reachable only through store and load, both of which hold
// the spin lock for the duration of a single assignment. The version counter
// deliberately lives outside the slot (see storage) so "is there anything
// new" never needs the lock.
type slot[T any] struct {
	mu      SpinLock
	value   T
	present bool
}

// store overwrites the value in place and marks the slot as holding one.
func (s *slot[T]) store(v T) {
	s.mu.Do(func() {
		s.value = v
		s.present = true
	})
}

// loadInto copies the value into dst while holding the lock and runs
// stamp before releasing it, so callers can pair the copy with the version
// visible at that moment. It reports whether the slot held a value.
func (s *slot[T]) loadInto(dst *T, stamp func()) (present bool) {
	s.mu.Do(func() {
		*dst = s.value
		present = s.present
		stamp()
	})
	return present
}
