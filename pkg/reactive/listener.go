package reactive

// Listener is anything that can be notified when a dependency changes.
// It is implemented by effects, memos, and component render effects.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For effects this schedules a re-run; for memos it invalidates the
	// cached value and forwards the notification downstream.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing and flush queues.
	ID() uint64
}

// depSubscriber is implemented by listeners that keep back-references to the
// dependency sets they are subscribed to, so stale edges can be removed
// before a re-run.
type depSubscriber interface {
	Listener
	addDep(d *dep)
}

// Cleanup is a function returned by effects to release resources.
// It runs before the effect re-runs and when the effect is disposed.
type Cleanup func()
