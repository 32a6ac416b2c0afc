package internal

// noCopy is embedded in types that must not be copied after first use.
// go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Writer is the single mutation handle of a cell.
//
// Exactly one Writer exists per cell. It shares the storage block with
// every Reader derived from it; readers keep observing the last value after
// the Writer is no longer used.
//
// Thread-safety: Set must be called from one goroutine at a time (single
// writer). NewReader, Version and Stats are safe from any goroutine.
type Writer[T any] struct {
	noCopy noCopy
	st     *storage[T]
}

// NewWriter creates an empty cell (optional-value variant).
// Version starts at 0; readers observe "no value" until the first Set.
func NewWriter[T any](cfg Config) *Writer[T] {
	return &Writer[T]{st: newStorage[T](cfg)}
}

// NewWriterWith creates a cell pre-initialised with v (default-value
// variant). Version starts at 1, so a fresh reader, whose local version is
// 0, refreshes on its first observation and always sees a value.
func NewWriterWith[T any](cfg Config, v T) *Writer[T] {
	w := NewWriter[T](cfg)
	w.st.slot.store(v)
	w.st.version.Store(1)
	return w
}

// Set replaces the current value.
//
// Algorithm:
//  1. Acquire the slot lock (scoped)
//  2. Overwrite the value in place
//  3. Release the lock
//  4. Bump the version (publication point)
//  5. Wake parked waiters (PollNotify)
//
// Set never waits on readers: the only contention is the slot lock, held
// by readers for a single copy.
func (w *Writer[T]) Set(v T) {
	w.st.publish(v)
}

// NewReader derives a new reader cursor. Its local version is 0, so its
// first Observe after any write (or on a pre-initialised cell) refreshes.
func (w *Writer[T]) NewReader() *Reader[T] {
	r := newReader(w.st)
	w.st.log.Debug("versioncell: reader created",
		"reader_id", r.id,
		"version", w.st.version.Load(),
	)
	return r
}

// Version returns the current published version.
func (w *Writer[T]) Version() uint64 {
	return w.st.version.Load()
}

// Stats returns a snapshot of cell-wide counters.
func (w *Writer[T]) Stats() CellStats {
	return CellStats{
		Version: w.st.version.Load(),
		Writes:  w.st.writes.Load(),
		Wakeups: w.st.wakeups.Load(),
		Waiters: int(w.st.waiting.Load()),
	}
}
