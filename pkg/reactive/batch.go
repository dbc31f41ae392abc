package reactive

// Batch groups multiple writes into a single notification phase. Triggers
// inside the batch are collected, deduplicated by listener ID, and fired
// once when the outermost batch completes. A listener whose dependencies
// were written five times inside a batch is notified exactly once.
//
// Batches nest; only the outermost completion notifies.
func Batch(fn func()) {
	incrementBatchDepth()
	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()
	fn()
}

// processPendingUpdates deduplicates and notifies all queued listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, l := range updates {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		l.MarkDirty()
	}
}

// Untracked runs fn with dependency tracking suspended: reads inside do not
// subscribe the current listener. For a single read, Peek is clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedValue evaluates fn with tracking suspended and returns its
// result.
func UntrackedValue[T any](fn func() T) T {
	var out T
	Untracked(func() { out = fn() })
	return out
}
